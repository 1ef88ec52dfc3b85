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

package scan

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Matcher decides whether a base name looks stale
type Matcher struct {
	patterns []string
}

// 🏭 NewMatcher validates patterns and returns a Matcher
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, errors.Errorf("no patterns")
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid pattern %q", p)
		}
	}
	return &Matcher{patterns: append([]string(nil), patterns...)}, nil
}

// 🔍 Match reports whether name matches any pattern. Matching is case-sensitive
// and name must be a base name, not a path.
func (m *Matcher) Match(name string) bool {
	for _, p := range m.patterns {
		// patterns were validated, so the error is always nil
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
