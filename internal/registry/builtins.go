package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxkimambo/fanout/internal/dispatch"
)

// ErrDivideByZero is raised by the builtin div action and is registered
// as the catchable kind "divide_by_zero".
var ErrDivideByZero = errors.New("division by zero")

// Builtins returns a registry pre-loaded with the stock actions used by
// batch descriptor files:
//
//	add, mul, div   numeric arithmetic on the given arguments
//	echo            returns its arguments joined as a plain string
//	emit            like echo, but wrapped as a Result-capable value
//	sleep           pauses for the given number of milliseconds
//	fail            always fails with the given message
func Builtins() *Registry {
	r := New()
	for name, action := range map[string]dispatch.ActionFunc{
		"add":   add,
		"mul":   mul,
		"div":   div,
		"echo":  echo,
		"emit":  emit,
		"sleep": sleep,
		"fail":  fail,
	} {
		if err := r.Register(name, action); err != nil {
			panic(err)
		}
	}
	if err := r.RegisterCatchable("divide_by_zero", ErrDivideByZero); err != nil {
		panic(err)
	}
	return r
}

func add(args ...any) (any, error) {
	sum := 0.0
	for i, arg := range args {
		n, err := toNumber(arg)
		if err != nil {
			return nil, fmt.Errorf("add: argument %d: %w", i, err)
		}
		sum += n
	}
	return sum, nil
}

func mul(args ...any) (any, error) {
	product := 1.0
	for i, arg := range args {
		n, err := toNumber(arg)
		if err != nil {
			return nil, fmt.Errorf("mul: argument %d: %w", i, err)
		}
		product *= n
	}
	return product, nil
}

func div(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("div: want 2 arguments, got %d", len(args))
	}
	a, err := toNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("div: argument 0: %w", err)
	}
	b, err := toNumber(args[1])
	if err != nil {
		return nil, fmt.Errorf("div: argument 1: %w", err)
	}
	if b == 0 {
		return nil, fmt.Errorf("div: %g / 0: %w", a, ErrDivideByZero)
	}
	return a / b, nil
}

func echo(args ...any) (any, error) {
	return joinArgs(args), nil
}

func emit(args ...any) (any, error) {
	return dispatch.StringResult(joinArgs(args)), nil
}

func sleep(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sleep: want 1 argument, got %d", len(args))
	}
	ms, err := toNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("sleep: %w", err)
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil, nil
}

func fail(args ...any) (any, error) {
	return nil, errors.New(joinArgs(args))
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ")
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %v (%T)", v, v)
	}
}
