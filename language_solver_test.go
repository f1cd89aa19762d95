package regexcore_test

import (
	"context"
	"testing"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/config"
	"github.com/0x4d5352/regexcore/internal/solver"
)

func TestLanguageSolverIntersectionEmpty(t *testing.T) {
	f := newFacade(t)
	s := regexcore.NewLanguageSolver(f)
	res, err := s.IntersectionEmpty(context.Background(), "/^[0-9]+$/", "/^[a-z]+$/", solver.Options{})
	if err != nil {
		t.Fatalf("IntersectionEmpty: %v", err)
	}
	if !res.Empty {
		t.Fatalf("expected disjoint languages, got %+v", res)
	}
}

func TestLanguageSolverSubsetOf(t *testing.T) {
	f := newFacade(t)
	s := regexcore.NewLanguageSolver(f)
	res, err := s.SubsetOf(context.Background(), "/^a+$/", "/^[a-c]+$/", solver.Options{})
	if err != nil {
		t.Fatalf("SubsetOf: %v", err)
	}
	if !res.IsSubset {
		t.Fatalf("expected a+ to be a subset of [a-c]+, got %+v", res)
	}
}

func TestLanguageSolverEquivalent(t *testing.T) {
	f := newFacade(t)
	s := regexcore.NewLanguageSolver(f)
	res, err := s.Equivalent(context.Background(), "/^a+$/", "/^aa*$/", solver.Options{})
	if err != nil {
		t.Fatalf("Equivalent: %v", err)
	}
	if !res.IsEquivalent {
		t.Fatalf("expected a+ == aa*, got %+v", res)
	}
}

func TestLanguageSolverRejectsNonRegularSubset(t *testing.T) {
	g, err := regexcore.New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := regexcore.NewLanguageSolver(g)
	_, err = s.IntersectionEmpty(context.Background(), `/(\w+)\1/`, "/a/", solver.Options{})
	if err == nil {
		t.Fatal("expected a backreference pattern to be rejected by the regular-subset gate")
	}
}
