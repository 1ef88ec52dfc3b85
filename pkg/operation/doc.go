/*
Package operation runs a cleanup pass end to end.

	+--------------+
	|  Precondition|  vcs.StatusChecker
	+------+-------+
	       |
	+------+-------+
	| Scan+Archive |  scan.Scanner -> archive.Archiver
	+------+-------+
	       |
	+------+-------+
	|    Verify    |  build.Verifier (live only)
	+--------------+

🎯 Purpose:
- Refuses to touch a working tree that is dirty or whose status is unknown
- Streams candidates from the scanner straight into the archiver
- Rebuilds the workspace after a live run and reports, never rolls back

🔄 Flow:
1. Status check; a dirty or unknown tree ends the run before any scan
2. Dry run: every candidate is reported with its planned destination
3. Live: every candidate is moved and logged; the first I/O error ends the run
4. Live: the build verifier runs once after archiving

⚡ Failures:
Every failure is a *StageError naming the step it came from. Describe
turns it into the line the cli prints. Files archived before a failure stay
in the archive.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:  cfg,
		Status:  vcs.NewGit(cfg.Root),
		Builder: build.Detect(cfg.Root),
	})
	if err != nil {
		return err
	}
	report, err := op.Run(log.NewContext(ctx, logger))
*/
package operation
