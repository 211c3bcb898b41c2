package manifest

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// plainDecoder reads one route per line:
//
//	# comment
//	router regexp
//	optimize
//	GET /users/:id users.show
//	ALL *
type plainDecoder struct{}

func (plainDecoder) Name() string {
	return "plain"
}

func (plainDecoder) Decode(body []byte, m *Manifest) error {
	sc := bufio.NewScanner(bytes.NewReader(body))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch {
		case fields[0] == "router" && len(fields) == 2:
			m.Router = fields[1]
		case fields[0] == "optimize" && len(fields) <= 2:
			m.Optimize = true
			if len(fields) == 2 {
				v, err := strconv.ParseBool(fields[1])
				if err != nil {
					return errors.Errorf("line %d: %v", line, err)
				}
				m.Optimize = v
			}
		case len(fields) == 2 || len(fields) == 3:
			rt := Route{Method: fields[0], Path: fields[1]}
			if len(fields) == 3 {
				rt.Name = fields[2]
			}
			m.Routes = append(m.Routes, rt)
		default:
			return errors.Errorf("line %d: expected \"METHOD PATH [NAME]\", got %q", line, text)
		}
	}
	return sc.Err()
}
