package strategy

import (
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/value"
)

// ParseRule parses a header rule declaration back into a Rule. The spec is
// the single-letter tag optionally followed by a parenthesised parameter
// list, exactly as Rule.Spec emits it.
func ParseRule(spec string) (Rule, error) {
	if spec == "" {
		return nil, errs.ErrBadTableHeader
	}

	tag := spec[0]
	rest := spec[1:]
	if rest != "" && (len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')') {
		return nil, errs.ErrBadTableHeader
	}
	var args []string
	if rest != "" {
		args = value.SplitFields(rest[1 : len(rest)-1])
	}

	switch tag {
	case 'S':
		if len(args) != 0 {
			return nil, errs.ErrBadTableHeader
		}

		return NewSolid(), nil
	case 'L':
		if len(args) != 0 {
			return nil, errs.ErrBadTableHeader
		}

		return NewLiquid(), nil
	case 'E':
		return parseEnum(args)
	case 'D':
		return parseDelta(args)
	case 'R':
		return parseRange(args)
	case 'P':
		return parsePattern(args)
	case 'M':
		return parseMultiplier(args)
	default:
		return nil, errs.ErrUnknownStrategy
	}
}

func parseEnum(args []string) (Rule, error) {
	if len(args) == 0 {
		return nil, errs.ErrBadTableHeader
	}
	domain := make([]*value.Value, 0, len(args))
	for _, tok := range args {
		v, err := value.ParseScalar(tok)
		if err != nil {
			return nil, errs.ErrBadTableHeader
		}
		domain = append(domain, v)
	}

	return newEnum(domain), nil
}

func parseDelta(args []string) (Rule, error) {
	if len(args) != 1 {
		return nil, errs.ErrBadTableHeader
	}
	base, err := value.ParseScalar(args[0])
	if err != nil || !base.IsNumeric() {
		return nil, errs.ErrBadTableHeader
	}

	return newDelta(base), nil
}

func parseRange(args []string) (Rule, error) {
	if len(args) != 2 {
		return nil, errs.ErrBadTableHeader
	}
	start, err1 := strconv.ParseInt(args[0], 10, 64)
	step, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, errs.ErrBadTableHeader
	}

	return newRange(start, step), nil
}

func parsePattern(args []string) (Rule, error) {
	if len(args) != 3 {
		return nil, errs.ErrBadTableHeader
	}

	tpl := args[0]
	if strings.HasPrefix(tpl, `"`) {
		var err error
		tpl, err = value.Unquote(tpl)
		if err != nil {
			return nil, errs.ErrBadTableHeader
		}
	}
	open := strings.IndexByte(tpl, '{')
	end := strings.IndexByte(tpl, '}')
	if open < 0 || end < open {
		return nil, errs.ErrBadTableHeader
	}
	width, err := strconv.Atoi(tpl[open+1 : end])
	if err != nil || width < 1 {
		return nil, errs.ErrBadTableHeader
	}
	prefix, suffix := tpl[:open], tpl[end+1:]
	if strings.ContainsAny(prefix, "{}") || strings.ContainsAny(suffix, "{}") {
		return nil, errs.ErrBadTableHeader
	}

	start, err1 := strconv.ParseInt(args[1], 10, 64)
	step, err2 := strconv.ParseInt(args[2], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, errs.ErrBadTableHeader
	}

	return newPattern(prefix, suffix, width, start, step), nil
}

func parseMultiplier(args []string) (Rule, error) {
	if len(args) != 1 {
		return nil, errs.ErrBadTableHeader
	}
	factor, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || factor <= 0 {
		return nil, errs.ErrBadTableHeader
	}

	return newMultiplier(factor), nil
}
