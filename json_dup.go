package blocksig

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// dupFrame tracks one open JSON container while scanning tokens.
type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string // current key (objects)
	index        int    // current element (arrays)
}

// detectDuplicateKeys reports object keys that appear twice in the same JSON
// object. Generic decoding would silently keep the last one, so a spec with
// two "type" keys would change meaning without notice. Syntax errors are left
// to the decoder.
func detectDuplicateKeys(data []byte) Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var iss Issues
	var stack []dupFrame

	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.object {
				top.expectingKey = true
			} else {
				top.index++
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return iss
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				top.key = v
				top.expectingKey = false
				if _, dup := top.keys[v]; dup {
					iss = append(iss, stackPath(stack).issue(CodeDuplicateKey, strconv.Quote(v)))
					continue
				}
				top.keys[v] = struct{}{}
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

func stackPath(stack []dupFrame) pathRef {
	p := rootPath()
	for _, f := range stack {
		if f.object {
			p = p.field(f.key)
		} else {
			p = p.index(f.index)
		}
	}
	return p
}
