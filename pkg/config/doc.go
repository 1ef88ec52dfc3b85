/*
Package config describes a single cleanup run.

	+-------------+
	|   Config    |
	|  (Run Desc) |
	+------+------+
	       |
	+------+------+
	|  Validate   |
	| (Normalise) |
	+-------------+

🎯 Purpose:
- Holds the root, archive location, audit log name and actor label
- Carries the staleness patterns and pruned directory names
- Carries the run mode (dry-run or live)

📝 Design Philosophy:
There is no configuration file. The cli builds a Config with Default and
flips DryRun when --dry-run is present. Everything else is fixed, but keeping
it in one validated struct lets the scanner, archiver and tests agree on the
same layout.

🔍 Example:

	cfg := config.Default(".")
	cfg.DryRun = true
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
