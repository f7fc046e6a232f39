package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	timeSeparator   = ">"
	actionSeparator = ";"
	relativePrefix  = "+"
	lineComment     = "//"
	blockOpen       = "/*"
	blockClose      = "*/"
)

// maxLineBytes caps a single script line. The default bufio.Scanner limit is
// 64KB, too small for very long text actions.
const maxLineBytes = 1 << 20

// ParseError is a fatal script diagnostic. Line is 1-based; Verb names the
// offending action verb when the failure is inside an action expression.
type ParseError struct {
	Line int
	Verb string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Verb != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Verb, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a full script and returns its instruction groups in ascending
// time order. Any malformed line aborts parsing with a *ParseError; there is
// no partial result.
func Parse(r io.Reader) ([]InstructionGroup, error) {
	var queue []InstructionGroup
	inBlock := false
	lineNum := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		line, inBlock = stripBlockComments(line, inBlock)
		if i := strings.Index(line, lineComment); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if n := strings.Count(line, timeSeparator); n != 1 {
			return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("incorrectly formatted line: %q", strings.TrimSpace(line))}
		}
		sep := strings.Index(line, timeSeparator)
		timeField := strings.TrimSpace(line[:sep])
		actionsField := line[sep+1:]

		ts, err := resolveTimestamp(timeField, queue)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Err: err}
		}

		actions, err := parseActions(actionsField, lineNum)
		if err != nil {
			return nil, err
		}

		queue = append(queue, InstructionGroup{Time: ts, Actions: actions})
	}
	if err := scanner.Err(); err != nil {
		// The scanner stops on the line it could not produce, one past the
		// last counted line.
		return nil, &ParseError{Line: lineNum + 1, Err: fmt.Errorf("read script: %w", err)}
	}
	return queue, nil
}

// ParseString parses a script held in memory.
func ParseString(s string) ([]InstructionGroup, error) {
	return Parse(strings.NewReader(s))
}

// stripBlockComments removes /* ... */ regions from line, carrying open-block
// state across calls. A region may open and close on the same line, and a
// line may contain several regions.
func stripBlockComments(line string, inBlock bool) (string, bool) {
	var b strings.Builder
	for {
		if inBlock {
			end := strings.Index(line, blockClose)
			if end < 0 {
				return b.String(), true
			}
			line = line[end+len(blockClose):]
			inBlock = false
			continue
		}
		start := strings.Index(line, blockOpen)
		if start < 0 {
			b.WriteString(line)
			return b.String(), false
		}
		b.WriteString(line[:start])
		line = line[start+len(blockOpen):]
		inBlock = true
	}
}

// resolveTimestamp turns a timestamp field into an absolute millisecond
// offset. A leading "+" adds to the previous line's resolved timestamp and is
// exempt from the strict-increase check; absolute values must strictly exceed
// the previous resolved timestamp (a first line may use any value).
func resolveTimestamp(field string, queue []InstructionGroup) (int64, error) {
	if rest, ok := strings.CutPrefix(field, relativePrefix); ok {
		n, err := strconv.ParseUint(rest, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("incorrectly formatted timestamp %q: %w", field, err)
		}
		var base int64
		if len(queue) > 0 {
			base = queue[len(queue)-1].Time
		}
		return base + int64(n), nil
	}

	n, err := strconv.ParseUint(field, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("incorrectly formatted timestamp %q: %w", field, err)
	}
	if len(queue) > 0 && int64(n) <= queue[len(queue)-1].Time {
		return 0, fmt.Errorf("timestamp %d must be greater than the previous line's (%d)", n, queue[len(queue)-1].Time)
	}
	return int64(n), nil
}

// parseActions splits an actions field on ";" and parses each expression.
// Empty segments (trailing or doubled separators) are ignored; a line with no
// actions at all is an error.
func parseActions(field string, line int) ([]Action, error) {
	segments := strings.Split(field, actionSeparator)
	actions := make([]Action, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		a, err := parseAction(seg, line)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if len(actions) == 0 {
		return nil, &ParseError{Line: line, Err: errors.New("need at least one action")}
	}
	return actions, nil
}

func parseAction(expr string, line int) (Action, error) {
	fields := strings.Fields(expr)
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "mousemove":
		return parseMouseMove(args, line)
	case "mousedown", "mouseup":
		if err := checkArgCount(line, verb, args, 1, 1); err != nil {
			return nil, err
		}
		b, err := ParseMouseButton(args[0])
		if err != nil {
			return nil, &ParseError{Line: line, Verb: verb, Err: err}
		}
		if verb == "mousedown" {
			return ButtonDown{Button: b}, nil
		}
		return ButtonUp{Button: b}, nil
	case "keydown", "keyup":
		if err := checkArgCount(line, verb, args, 1, 1); err != nil {
			return nil, err
		}
		k, err := ParseKey(args[0])
		if err != nil {
			return nil, &ParseError{Line: line, Verb: verb, Err: err}
		}
		if verb == "keydown" {
			return KeyDown{Key: k}, nil
		}
		return KeyUp{Key: k}, nil
	case "text":
		if len(args) == 0 {
			return nil, &ParseError{Line: line, Verb: verb, Err: errors.New("no text provided")}
		}
		return TypeText{Text: strings.Join(args, " ")}, nil
	default:
		return nil, &ParseError{Line: line, Err: fmt.Errorf("invalid action %q", verb)}
	}
}

func parseMouseMove(args []string, line int) (Action, error) {
	const verb = "mousemove"
	if err := checkArgCount(line, verb, args, 3, 4); err != nil {
		return nil, err
	}
	mode, err := ParseMoveMode(args[0])
	if err != nil {
		return nil, &ParseError{Line: line, Verb: verb, Err: err}
	}
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, &ParseError{Line: line, Verb: verb, Err: fmt.Errorf("invalid X position %q: %w", args[1], err)}
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, &ParseError{Line: line, Verb: verb, Err: fmt.Errorf("invalid Y position %q: %w", args[2], err)}
	}
	duration := 0
	if len(args) == 4 {
		duration, err = strconv.Atoi(args[3])
		if err != nil || duration < 0 {
			return nil, &ParseError{Line: line, Verb: verb, Err: fmt.Errorf("invalid duration %q", args[3])}
		}
	}
	return PointerMove{X: x, Y: y, Duration: duration, Mode: mode}, nil
}

func checkArgCount(line int, verb string, args []string, min, max int) error {
	if len(args) < min {
		return &ParseError{Line: line, Verb: verb, Err: fmt.Errorf("too few arguments (min. %d)", min)}
	}
	if len(args) > max {
		return &ParseError{Line: line, Verb: verb, Err: fmt.Errorf("too many arguments (max. %d)", max)}
	}
	return nil
}
