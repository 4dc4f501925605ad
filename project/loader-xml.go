package project

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

const (
	RootTag  = "widget"
	NamePath = "./name"
)

// LoadName reads the project name from a Cordova config.xml. Any failure is
// logged before being returned.
func LoadName(fn string) (string, error) {
	log.Info().Msgf("loading project name from %s", fn)
	name, err := loadName(fn)
	if err != nil {
		log.Error().Err(err).Msg("could not load config.xml")
		return "", err
	}
	return name, nil
}

func loadName(fn string) (string, error) {
	buf, err := os.ReadFile(fn)
	if err != nil {
		return "", err
	}
	name, err := ParseName(buf)
	var se *StructuralError
	if errors.As(err, &se) {
		se.FN = fn
	} else if err != nil {
		err = fmt.Errorf("%s: %w", fn, err)
	}
	return name, err
}

// ParseName extracts the text of widget/name, trimmed of surrounding
// whitespace the way Cordova reads it. Anything preceding the first '<' (a
// byte order mark, usually) is skipped; syntax errors are reported with line
// numbers of the original buffer.
func ParseName(buf []byte) (string, error) {
	start := bytes.IndexByte(buf, '<')
	if start < 0 {
		return "", &StructuralError{Msg: "no xml content"}
	}
	sl := CalcSourceLocation(string(buf), start)
	if start > 0 {
		log.Debug().Msgf("skipped %d byte(s) before document start at %s", start, sl)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf[start:]); err != nil {
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			return "", fmt.Errorf("xml [line %d]: %w", sl.LineNumber-1+se.Line, err)
		}
		return "", fmt.Errorf("xml [document starts at %s]: %w", sl, err)
	}

	root := doc.Root()
	if root == nil {
		return "", &StructuralError{Msg: "missing root element"}
	}
	if root.Tag != RootTag {
		return "", &StructuralError{
			Msg: fmt.Sprintf("incorrect root node name (expected %q, was %q)", RootTag, root.Tag),
		}
	}

	tag := root.FindElement(NamePath)
	if tag == nil {
		return "", &StructuralError{Msg: "no name tag"}
	}

	name := strings.TrimSpace(tag.Text())
	if name == "" {
		return "", &StructuralError{Msg: "empty name tag"}
	}
	return name, nil
}
