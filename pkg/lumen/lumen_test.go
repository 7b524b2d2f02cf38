package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde-lumen/lumen/internal/runtime"
)

func TestEvalArithmetic(t *testing.T) {
	realm := CreateRealm()
	v, err := Eval(realm, "1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(7), v)
}

func TestEvalPersistsStateAcrossCalls(t *testing.T) {
	realm := CreateRealm()
	_, err := Eval(realm, "let total = 0;")
	require.NoError(t, err)
	_, err = Eval(realm, "total = total + 5;")
	require.NoError(t, err)
	v, err := Eval(realm, "total;")
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(5), v)
}

func TestEvalUncaughtThrowSurfacesAsError(t *testing.T) {
	realm := CreateRealm()
	_, err := Eval(realm, `throw new TypeError("nope");`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestEvalSyntaxErrorDoesNotPanic(t *testing.T) {
	realm := CreateRealm()
	_, err := Eval(realm, "let = ;")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestArrayAndStringBuiltinsAreWired(t *testing.T) {
	realm := CreateRealm()
	v, err := Eval(realm, `[3, 1, 2].sort().join("-");`)
	require.NoError(t, err)
	assert.Equal(t, runtime.String("1-2-3"), v)
}

func TestStepBudgetBoundsInfiniteLoop(t *testing.T) {
	realm := CreateRealm(WithStepBudget(1000))
	_, err := Eval(realm, "while (true) {}")
	require.Error(t, err)
}

func TestToDisplayFormatsValues(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42;", "42"},
		{`"hi";`, "'hi'"},
		{"true;", "true"},
		{"undefined;", "undefined"},
	}
	realm := CreateRealm()
	for _, tt := range tests {
		v, err := Eval(realm, tt.src)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ToDisplay(v))
	}
}

func TestTwoRealmsDoNotShareState(t *testing.T) {
	a := CreateRealm()
	b := CreateRealm()
	_, err := Eval(a, "let x = 1;")
	require.NoError(t, err)
	_, err = Eval(b, "x;")
	require.Error(t, err, "x should be unresolvable in a separate Realm")
}
