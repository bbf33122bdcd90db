/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(buf, "warning")
	defer Init(os.Stderr, "info")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warning("warning %d", 3)
	Error("error %d", 4)

	out := buf.String()
	for _, unexpected := range []string{"debug 1", "info 2"} {
		if strings.Contains(out, unexpected) {
			t.Errorf("output must not contain %q: %s", unexpected, out)
		}
	}
	for _, expected := range []string{WarningPrefix + "warning 3", ErrorPrefix + "error 4", LogPrefix} {
		if !strings.Contains(out, expected) {
			t.Errorf("output must contain %q: %s", expected, out)
		}
	}
	if Writer() != buf {
		t.Errorf("Writer must return the configured output")
	}
}

func TestSetLevelWrong(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := ParseLevel("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
