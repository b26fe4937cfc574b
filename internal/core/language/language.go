// Package language defines the closed set of programming languages the classifier can report
// Codes are a wire contract shared with the model artifact: append only, never renumber
package language

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SetVersion identifies the membership revision of the enumeration
// bump it whenever a language is appended
const SetVersion = 1

// Language is a language code. The zero value is Other
type Language int

// Codes in model label order. Other is the fallback for anything unrecognized
const (
	Other Language = iota
	OneCEnterprise
	ABAP
	ActionScript
	Ada
	ApacheGroovy
	Apex
	AppleScript
	ASP
	Assembly
	AutoHotkey
	AWK
	Basic
	Batch
	Bison
	C
	Clojure
	CMake
	COBOL
	CoffeeScript
	CommonLisp
	CPlusPlus
	Crystal
	CSharp
	CSS
	CSV
	D
	Dart
	Delphi
	Docker
	Elixir
	Elm
	Erlang
	Fift
	Forth
	Fortran
	FSharp
	FunC
	GAMS
	Go
	Gradle
	GraphQL
	Hack
	Haskell
	HTML
	Icon
	IDL
	INI
	Java
	JavaScript
	JSON
	Julia
	Keyman
	Kotlin
	LaTeX
	Lisp
	Logo
	Lua
	Makefile
	Markdown
	MATLAB
	Nginx
	Nim
	ObjectiveC
	OCaml
	OpenEdgeABL
	Pascal
	Perl
	PHP
	PLSQL
	PowerShell
	Prolog
	Protobuf
	Python
	QML
	R
	Raku
	Regex
	Ruby
	Rust
	SAS
	Scala
	Scheme
	Shell
	Smalltalk
	Solidity
	SQL
	Swift
	Tcl
	Textile
	TL
	TypeScript
	UnrealScript
	Vala
	VBScript
	Verilog
	VisualBasic
	Wolfram
	XML
	YAML
)

// Max is the highest defined code
const Max = YAML

type meta struct {
	name    string // canonical upper snake name, stable on the wire
	display string
}

var table = [Max + 1]meta{
	Other:          {"OTHER", "Other"},
	OneCEnterprise: {"1S_ENTERPRISE", "1C:Enterprise"},
	ABAP:           {"ABAP", "ABAP"},
	ActionScript:   {"ACTIONSCRIPT", "ActionScript"},
	Ada:            {"ADA", "Ada"},
	ApacheGroovy:   {"APACHE_GROOVY", "Apache Groovy"},
	Apex:           {"APEX", "Apex"},
	AppleScript:    {"APPLESCRIPT", "AppleScript"},
	ASP:            {"ASP", "ASP"},
	Assembly:       {"ASSEMBLY", "Assembly"},
	AutoHotkey:     {"AUTOHOTKEY", "AutoHotkey"},
	AWK:            {"AWK", "AWK"},
	Basic:          {"BASIC", "BASIC"},
	Batch:          {"BATCH", "Batch"},
	Bison:          {"BISON", "Bison"},
	C:              {"C", "C"},
	Clojure:        {"CLOJURE", "Clojure"},
	CMake:          {"CMAKE", "CMake"},
	COBOL:          {"COBOL", "COBOL"},
	CoffeeScript:   {"COFFESCRIPT", "CoffeeScript"},
	CommonLisp:     {"COMMON_LISP", "Common Lisp"},
	CPlusPlus:      {"CPLUSPLUS", "C++"},
	Crystal:        {"CRYSTAL", "Crystal"},
	CSharp:         {"CSHARP", "C#"},
	CSS:            {"CSS", "CSS"},
	CSV:            {"CSV", "CSV"},
	D:              {"D", "D"},
	Dart:           {"DART", "Dart"},
	Delphi:         {"DELPHI", "Delphi"},
	Docker:         {"DOCKER", "Dockerfile"},
	Elixir:         {"ELIXIR", "Elixir"},
	Elm:            {"ELM", "Elm"},
	Erlang:         {"ERLANG", "Erlang"},
	Fift:           {"FIFT", "Fift"},
	Forth:          {"FORTH", "Forth"},
	Fortran:        {"FORTRAN", "Fortran"},
	FSharp:         {"FSHARP", "F#"},
	FunC:           {"FUNC", "FunC"},
	GAMS:           {"GAMS", "GAMS"},
	Go:             {"GO", "Go"},
	Gradle:         {"GRADLE", "Gradle"},
	GraphQL:        {"GRAPHQL", "GraphQL"},
	Hack:           {"HACK", "Hack"},
	Haskell:        {"HASKELL", "Haskell"},
	HTML:           {"HTML", "HTML"},
	Icon:           {"ICON", "Icon"},
	IDL:            {"IDL", "IDL"},
	INI:            {"INI", "INI"},
	Java:           {"JAVA", "Java"},
	JavaScript:     {"JAVASCRIPT", "JavaScript"},
	JSON:           {"JSON", "JSON"},
	Julia:          {"JULIA", "Julia"},
	Keyman:         {"KEYMAN", "Keyman"},
	Kotlin:         {"KOTLIN", "Kotlin"},
	LaTeX:          {"LATEX", "LaTeX"},
	Lisp:           {"LISP", "Lisp"},
	Logo:           {"LOGO", "Logo"},
	Lua:            {"LUA", "Lua"},
	Makefile:       {"MAKEFILE", "Makefile"},
	Markdown:       {"MARKDOWN", "Markdown"},
	MATLAB:         {"MATLAB", "MATLAB"},
	Nginx:          {"NGINX", "Nginx"},
	Nim:            {"NIM", "Nim"},
	ObjectiveC:     {"OBJECTIVE_C", "Objective-C"},
	OCaml:          {"OCAML", "OCaml"},
	OpenEdgeABL:    {"OPENEDGE_ABL", "OpenEdge ABL"},
	Pascal:         {"PASCAL", "Pascal"},
	Perl:           {"PERL", "Perl"},
	PHP:            {"PHP", "PHP"},
	PLSQL:          {"PL_SQL", "PL/SQL"},
	PowerShell:     {"POWERSHELL", "PowerShell"},
	Prolog:         {"PROLOG", "Prolog"},
	Protobuf:       {"PROTOBUF", "Protocol Buffers"},
	Python:         {"PYTHON", "Python"},
	QML:            {"QML", "QML"},
	R:              {"R", "R"},
	Raku:           {"RAKU", "Raku"},
	Regex:          {"REGEX", "Regular expression"},
	Ruby:           {"RUBY", "Ruby"},
	Rust:           {"RUST", "Rust"},
	SAS:            {"SAS", "SAS"},
	Scala:          {"SCALA", "Scala"},
	Scheme:         {"SCHEME", "Scheme"},
	Shell:          {"SHELL", "Shell"},
	Smalltalk:      {"SMALLTALK", "Smalltalk"},
	Solidity:       {"SOLIDITY", "Solidity"},
	SQL:            {"SQL", "SQL"},
	Swift:          {"SWIFT", "Swift"},
	Tcl:            {"TCL", "Tcl"},
	Textile:        {"TEXTILE", "Textile"},
	TL:             {"TL", "TL (Type Language)"},
	TypeScript:     {"TYPESCRIPT", "TypeScript"},
	UnrealScript:   {"UNREALSCRIPT", "UnrealScript"},
	Vala:           {"VALA", "Vala"},
	VBScript:       {"VBSCRIPT", "VBScript"},
	Verilog:        {"VERILOG", "Verilog"},
	VisualBasic:    {"VISUAL_BASIC", "Visual Basic"},
	Wolfram:        {"WOLFRAM", "Wolfram Language"},
	XML:            {"XML", "XML"},
	YAML:           {"YAML", "YAML"},
}

// byName is built once from table for Parse
var byName = func() map[string]Language {
	m := make(map[string]Language, len(table))
	for i, md := range table {
		m[md.name] = Language(i)
	}
	return m
}()

// FromCode converts a raw integer code into a Language
// anything outside 0..Max becomes Other, so the conversion is total
func FromCode(code int) Language {
	if code < 0 || code > int(Max) {
		return Other
	}
	return Language(code)
}

// Valid reports whether l is a defined member
func (l Language) Valid() bool { return l >= Other && l <= Max }

// Code returns the integer code
func (l Language) Code() int { return int(l) }

// String returns the canonical name (e.g. "PYTHON"); undefined values print as OTHER
func (l Language) String() string {
	if !l.Valid() {
		return table[Other].name
	}
	return table[l].name
}

// DisplayName returns a human friendly name (e.g. "C++")
func (l Language) DisplayName() string {
	if !l.Valid() {
		return table[Other].display
	}
	return table[l].display
}

// Parse resolves a canonical name or a decimal code. Matching on names ignores case
// and treats '-' and ' ' as '_'
func Parse(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Other, fmt.Errorf("language: empty name")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(Max) {
			return Other, fmt.Errorf("language: code %d out of range 0..%d", n, int(Max))
		}
		return Language(n), nil
	}
	key := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	if l, ok := byName[key]; ok {
		return l, nil
	}
	return Other, fmt.Errorf("language: unknown name %q", s)
}

// All returns every member in code order, Other first
func All() []Language {
	out := make([]Language, 0, len(table))
	for i := range table {
		out = append(out, Language(i))
	}
	return out
}

// MarshalJSON encodes the canonical name
func (l Language) MarshalJSON() ([]byte, error) { return json.Marshal(l.String()) }

// UnmarshalJSON accepts a canonical name or a numeric code
func (l *Language) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		v, err := Parse(name)
		if err != nil {
			return err
		}
		*l = v
		return nil
	}
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return fmt.Errorf("language: want name or code: %w", err)
	}
	if code < 0 || code > int(Max) {
		return fmt.Errorf("language: code %d out of range 0..%d", code, int(Max))
	}
	*l = Language(code)
	return nil
}
