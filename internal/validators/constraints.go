package validators

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ConstraintEvaluator evaluates a profile's free-form
// preferences.phonetic_constraints expressions against a candidate
// name, adapted from the compiled-program cache shape of a condition
// evaluator used elsewhere in this codebase's lineage for routing
// rules. Unlike that evaluator, the environment exposed here is fixed
// and deliberately small: name, length, lane — no phonetic heuristics.
type ConstraintEvaluator struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
}

// NewConstraintEvaluator creates an empty evaluator.
func NewConstraintEvaluator() *ConstraintEvaluator {
	return &ConstraintEvaluator{cache: make(map[string]*vm.Program)}
}

// candidateEnv is the expression environment a phonetic_constraints
// entry is evaluated against.
type candidateEnv struct {
	Name   string `expr:"name"`
	Length int    `expr:"length"`
	Lane   string `expr:"lane"`
}

// Evaluate compiles (or reuses a cached compilation of) constraint and
// runs it against name/lane. A constraint that fails to compile or
// evaluate is treated as not satisfied rather than propagated as an
// error, since a malformed constraint string from the model should
// not fail the run.
func (c *ConstraintEvaluator) Evaluate(constraint, name, lane string) bool {
	program, err := c.compiled(constraint)
	if err != nil {
		return false
	}

	env := candidateEnv{Name: name, Length: len([]rune(name)), Lane: lane}
	result, err := expr.Run(program, env)
	if err != nil {
		return false
	}

	ok, isBool := result.(bool)
	return isBool && ok
}

// SatisfiesAll reports whether name satisfies every constraint in
// constraints (vacuously true when there are none).
func (c *ConstraintEvaluator) SatisfiesAll(constraints []string, name, lane string) bool {
	for _, constraint := range constraints {
		if !c.Evaluate(constraint, name, lane) {
			return false
		}
	}
	return true
}

func (c *ConstraintEvaluator) compiled(constraint string) (*vm.Program, error) {
	c.mu.Lock()
	if program, ok := c.cache[constraint]; ok {
		c.mu.Unlock()
		return program, nil
	}
	c.mu.Unlock()

	program, err := expr.Compile(constraint, expr.Env(candidateEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[constraint] = program
	c.mu.Unlock()
	return program, nil
}
