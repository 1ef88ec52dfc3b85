// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package archive

import (
	"fmt"
	"os"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📜 Record is one audit log entry
type Record struct {
	Time        time.Time // When the move happened
	Source      string    // Path relative to the root before the move
	Destination string    // Path relative to the root after the move
	Actor       string    // Static label of the tool
}

// 📝 String renders the record as a single log line
func (r Record) String() string {
	return fmt.Sprintf("%s archived %s to %s by %s",
		r.Time.UTC().Format(time.RFC3339Nano), r.Source, r.Destination, r.Actor)
}

// 📒 Journal appends records to the audit log
type Journal struct {
	path string
}

// 🏭 NewJournal creates a journal writing to path
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// ➕ Append writes one record. The file is opened in append mode for every
// write and created when missing.
func (j *Journal) Append(r Record) (err error) {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Errorf("opening audit log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing audit log: %w", cerr)
		}
	}()

	if _, err := f.WriteString(r.String() + "\n"); err != nil {
		return errors.Errorf("writing audit log: %w", err)
	}
	return nil
}

