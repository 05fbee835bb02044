package schema

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/pkg/errors"
)

// SupportedMajor is the major document version Load accepts.
const SupportedMajor = "v1"

// DefaultVersion is assumed for documents without a version.
const DefaultVersion = "v1.0.0"

// A schema document:
//
//	version: v1.0.0
//	fields:
//	  - name: email
//	    rules:
//	      - rule: required
//	      - rule: email
//	        message: Please enter a valid address
//	  - name: address
//	    fields:
//	      - name: city
//	        rules: [{rule: required}]
type document struct {
	Version string     `yaml:"version"`
	Fields  []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name   string     `yaml:"name"`
	Rules  []ruleDoc  `yaml:"rules"`
	Fields []fieldDoc `yaml:"fields"`
}

type ruleDoc struct {
	Rule      string   `yaml:"rule"`
	Value     any      `yaml:"value"`
	Values    []string `yaml:"values"`
	Message   string   `yaml:"message"`
	Formats   []string `yaml:"formats"`
	MaxWidth  int      `yaml:"maxWidth"`
	MaxHeight int      `yaml:"maxHeight"`
}

// LoadFile reads a YAML schema document from path.
func LoadFile(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, schemaError("schema.LoadFile", fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML schema document.
func Load(r io.Reader) (*Object, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, schemaError("schema.Load", fmt.Errorf("failed to parse schema: %w", err))
	}

	version, err := checkVersion(doc.Version)
	if err != nil {
		return nil, schemaError("schema.Load", err)
	}

	obj, err := buildObject("", doc.Fields)
	if err != nil {
		return nil, schemaError("schema.Load", err)
	}
	obj.Version = version
	return obj, nil
}

func schemaError(op string, err error) error {
	return &errors.FormError{Op: op, Kind: errors.KindSchema, Err: err}
}

func checkVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid schema version %q", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return "", fmt.Errorf("unsupported schema version %s (want %s.x.y)", v, SupportedMajor)
	}
	return semver.Canonical(v), nil
}

func buildObject(prefix string, docs []fieldDoc) (*Object, error) {
	fields := make([]*Field, 0, len(docs))
	for _, fd := range docs {
		name := strings.TrimSpace(fd.Name)
		if name == "" {
			return nil, fmt.Errorf("field without a name under %q", prefix)
		}
		if strings.ContainsAny(name, ".[") {
			return nil, fmt.Errorf("field name %q must not contain '.' or '['", name)
		}
		path := joinPath(prefix, name)

		field := NewField(name)
		for _, rd := range fd.Rules {
			r, err := buildRule(rd)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", path, err)
			}
			field.Rules = append(field.Rules, r)
		}
		if len(fd.Fields) > 0 {
			nested, err := buildObject(path, fd.Fields)
			if err != nil {
				return nil, err
			}
			field.Nested(nested)
		}
		fields = append(fields, field)
	}
	return New(fields...), nil
}

func buildRule(rd ruleDoc) (Rule, error) {
	var r Rule
	switch rd.Rule {
	case "required":
		r = Required()
	case "email":
		r = Email()
	case "minLength", "maxLength":
		n, ok := toFloat(rd.Value)
		if !ok || n < 0 || n != float64(int(n)) {
			return nil, fmt.Errorf("rule %s needs a non-negative integer value, got %v", rd.Rule, rd.Value)
		}
		if rd.Rule == "minLength" {
			r = MinLength(int(n))
		} else {
			r = MaxLength(int(n))
		}
	case "min", "max":
		n, ok := toFloat(rd.Value)
		if !ok {
			return nil, fmt.Errorf("rule %s needs a numeric value, got %v", rd.Rule, rd.Value)
		}
		if rd.Rule == "min" {
			r = Min(n)
		} else {
			r = Max(n)
		}
	case "pattern":
		expr, ok := rd.Value.(string)
		if !ok {
			return nil, fmt.Errorf("rule pattern needs a string value, got %v", rd.Value)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule pattern: %w", err)
		}
		r = Pattern(re)
	case "oneOf":
		if len(rd.Values) == 0 {
			return nil, fmt.Errorf("rule oneOf needs values")
		}
		r = OneOf(rd.Values...)
	case "image":
		r = Image(ImageOptions{Formats: rd.Formats, MaxWidth: rd.MaxWidth, MaxHeight: rd.MaxHeight})
	case "":
		return nil, fmt.Errorf("rule without a name")
	default:
		return nil, fmt.Errorf("unknown rule %q", rd.Rule)
	}
	if rd.Message != "" {
		r = WithMessage(r, rd.Message)
	}
	return r, nil
}
