package rpc

import (
	"bytes"
	"mime"
	"net/textproto"
	"strings"
)

// Part is one segment of a multipart body.
type Part struct {
	// ID is the 1-based position of the part in the body.
	ID int
	// Header maps canonical header names to their values.
	Header map[string]string
	// Content is the part payload, without the line terminator that
	// precedes the next delimiter.
	Content []byte
}

var (
	crlf          = []byte("\r\n")
	lf            = []byte("\n")
	closingSuffix = []byte("--")
)

// Boundary returns the delimiter declared by a multipart content type:
// "--" followed by the boundary parameter. It reports false when the content
// type is empty or declares no boundary.
func Boundary(contentType string) (string, bool) {
	if contentType == "" {
		return "", false
	}

	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		b := params["boundary"]
		if b == "" {
			return "", false
		}
		return "--" + b, true
	}

	// mime rejects some headers servers send in the wild; fall back to a
	// plain parameter scan.
	b, ok := paramValue(contentType, "boundary")
	if !ok || b == "" {
		return "", false
	}
	return "--" + b, true
}

// DecodeParts splits a multipart body into its parts, in body order.
//
// A body without a declared boundary, or without any delimiter, decodes to an
// empty list. Text before the first delimiter and after the closing one is
// ignored. A part that is not closed by a further delimiter, lacks the blank
// line that ends its headers, or holds a header line without a colon fails
// the whole decode.
func DecodeParts(contentType string, body []byte) ([]Part, error) {
	delim, ok := Boundary(contentType)
	if !ok {
		return nil, nil
	}
	d := []byte(delim)

	pos := bytes.Index(body, d)
	if pos < 0 {
		return nil, nil
	}

	var parts []Part
	for {
		start := pos + len(d)
		rest := body[start:]
		if len(rest) == 0 || bytes.HasPrefix(rest, closingSuffix) {
			break
		}

		eol, ok := lineTerminator(rest)
		if !ok {
			return nil, malformedf("part %d: delimiter is not followed by a line break", len(parts)+1)
		}
		start += len(eol)

		next := bytes.Index(body[start:], d)
		if next < 0 {
			return nil, malformedf("part %d: missing closing delimiter", len(parts)+1)
		}

		part, err := parsePart(len(parts)+1, body[start:start+next], eol)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		pos = start + next
	}

	return parts, nil
}

// lineTerminator returns the line break b starts with.
func lineTerminator(b []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(b, crlf):
		return crlf, true
	case bytes.HasPrefix(b, lf):
		return lf, true
	default:
		return nil, false
	}
}

// parsePart splits a raw segment into headers and content.
func parsePart(id int, segment, eol []byte) (Part, error) {
	part := Part{ID: id, Header: make(map[string]string)}

	var headerBlock, content []byte
	if bytes.HasPrefix(segment, eol) {
		content = segment[len(eol):]
	} else {
		sep := append(append([]byte{}, eol...), eol...)
		i := bytes.Index(segment, sep)
		if i < 0 {
			return Part{}, malformedf("part %d: no blank line after headers", id)
		}
		headerBlock = segment[:i]
		content = segment[i+len(sep):]
	}
	part.Content = bytes.TrimSuffix(content, eol)

	if len(headerBlock) == 0 {
		return part, nil
	}
	for _, line := range strings.Split(string(headerBlock), string(eol)) {
		key, value, err := parseHeaderLine(line)
		if err != nil {
			return Part{}, malformedf("part %d: %v", id, err)
		}
		part.Header[key] = value
	}

	return part, nil
}

// parseHeaderLine splits "Key: value" at the first colon. The value keeps
// any further colons.
func parseHeaderLine(line string) (string, string, error) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", malformedf("header line %q has no colon", line)
	}
	key := strings.TrimSpace(line[:i])
	if key == "" {
		return "", "", malformedf("header line %q has an empty name", line)
	}
	value := strings.TrimPrefix(line[i+1:], " ")
	return textproto.CanonicalMIMEHeaderKey(key), value, nil
}

// paramValue finds key=value in a header value with parameters, such as a
// content type or a content disposition. Quoted values are unquoted.
// Parameters are matched independently of their order.
func paramValue(header, key string) (string, bool) {
	lower := strings.ToLower(header)
	marker := strings.ToLower(key) + "="

	for from := 0; from < len(lower); {
		i := strings.Index(lower[from:], marker)
		if i < 0 {
			return "", false
		}
		i += from
		from = i + len(marker)

		if i > 0 && !isParamSeparator(lower[i-1]) {
			continue
		}

		rest := header[i+len(marker):]
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return "", false
			}
			return rest[1 : 1+end], true
		}
		if end := strings.IndexByte(rest, ';'); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func isParamSeparator(c byte) bool {
	return c == ';' || c == ' ' || c == '\t'
}
