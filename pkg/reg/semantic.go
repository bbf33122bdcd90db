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

package reg

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells how the raw register value is interpreted
type Kind int

const (
	KindRaw Kind = iota
	KindFlags
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindFlags:
		return "flags"
	case KindEnum:
		return "enum"
	}
	return "raw"
}

const (
	flagsNone      = "None"
	flagsSeparator = "|"
)

type Member struct {
	Name  string
	Value uint32
}

// Semantic describes the values a register can hold.
// Members are informational: values outside of them are never rejected.
type Semantic struct {
	Name    string
	Kind    Kind
	Members []Member
}

var (
	RawU8  = &Semantic{Name: "uint8", Kind: KindRaw}
	RawU16 = &Semantic{Name: "uint16", Kind: KindRaw}
	RawU32 = &Semantic{Name: "uint32", Kind: KindRaw}
)

func (s *Semantic) member(name string) (uint32, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Label returns the symbolic form of the raw value.
// ok is false when the value is not fully described by the members,
// in this case the label carries the undescribed part as a number.
func (s *Semantic) Label(raw uint32) (label string, ok bool) {
	switch s.Kind {
	case KindEnum:
		for _, m := range s.Members {
			if m.Value == raw {
				return m.Name, true
			}
		}
		return strconv.FormatUint(uint64(raw), 10), false
	case KindFlags:
		if raw == 0 {
			return flagsNone, true
		}
		var names []string
		rest := raw
		for _, m := range s.Members {
			if m.Value != 0 && raw&m.Value == m.Value {
				names = append(names, m.Name)
				rest &^= m.Value
			}
		}
		if rest != 0 {
			names = append(names, fmt.Sprintf("0x%x", rest))
		}
		return strings.Join(names, flagsSeparator), rest == 0
	}
	return strconv.FormatUint(uint64(raw), 10), true
}

// Parse converts a numeric literal (decimal, 0x, 0b, 0o) or a member name to the raw value.
// Flag sets also accept member names joined with |.
func (s *Semantic) Parse(text string) (uint32, error) {
	text = strings.TrimSpace(text)
	if v, err := strconv.ParseUint(text, 0, 32); err == nil {
		return uint32(v), nil
	}
	switch s.Kind {
	case KindEnum:
		if v, ok := s.member(text); ok {
			return v, nil
		}
	case KindFlags:
		if text == flagsNone {
			return 0, nil
		}
		var result uint32
		for _, part := range strings.Split(text, flagsSeparator) {
			part = strings.TrimSpace(part)
			if v, ok := s.member(part); ok {
				result |= v
				continue
			}
			v, err := strconv.ParseUint(part, 0, 32)
			if err != nil {
				return 0, ErrBadValue{Semantic: s.Name, Value: text}
			}
			result |= uint32(v)
		}
		return result, nil
	}
	return 0, ErrBadValue{Semantic: s.Name, Value: text}
}
