package diffutils_test

import (
	"testing"

	"github.com/fwojciec/diffutils"
	"github.com/stretchr/testify/assert"
)

func TestCountLines(t *testing.T) {
	t.Parallel()

	old, new := diffutils.CountLines([]diffutils.Line{
		line(diffutils.LineContext, "a"),
		line(diffutils.LineRemoved, "b"),
		line(diffutils.LineRemoved, "c"),
		line(diffutils.LineAdded, "d"),
	})

	assert.Equal(t, 3, old)
	assert.Equal(t, 2, new)
}

func TestValidateHunk(t *testing.T) {
	t.Parallel()

	lines := []diffutils.Line{
		line(diffutils.LineContext, "a"),
		line(diffutils.LineRemoved, "b"),
		line(diffutils.LineAdded, "c"),
	}

	t.Run("consistent hunk passes", func(t *testing.T) {
		t.Parallel()

		errs := diffutils.ValidateHunk(0, diffutils.Hunk{OldCount: 2, NewCount: 2, Lines: lines})

		assert.Empty(t, errs)
	})

	t.Run("both counts wrong", func(t *testing.T) {
		t.Parallel()

		errs := diffutils.ValidateHunk(4, diffutils.Hunk{OldCount: 3, NewCount: 1, Lines: lines})

		assert.Equal(t, []diffutils.ValidationError{
			{Hunk: 4, Reason: diffutils.ErrOldCountMismatch, Declared: 3, Actual: 2},
			{Hunk: 4, Reason: diffutils.ErrNewCountMismatch, Declared: 1, Actual: 2},
		}, errs)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid diff", func(t *testing.T) {
		t.Parallel()

		diff := &diffutils.Diff{Files: []diffutils.FileData{
			{Destination: "a.go", Hunks: []diffutils.Hunk{{NewCount: 1, Lines: []diffutils.Line{line(diffutils.LineAdded, "x")}}}},
			{Source: "img.png", Destination: "img.png", Binary: true},
		}}

		assert.Nil(t, diffutils.Validate(diff))
	})

	t.Run("reports file and hunk indices", func(t *testing.T) {
		t.Parallel()

		diff := &diffutils.Diff{Files: []diffutils.FileData{
			{Destination: "ok.go"},
			{
				Destination: "bad.go",
				Hunks: []diffutils.Hunk{
					{NewCount: 1, Lines: []diffutils.Line{line(diffutils.LineAdded, "x")}},
					{OldCount: 5, Lines: []diffutils.Line{line(diffutils.LineRemoved, "y")}},
				},
			},
			{Binary: true, Destination: "bin", Hunks: []diffutils.Hunk{{}}},
			{},
		}}

		errs := diffutils.Validate(diff)

		assert.Equal(t, []diffutils.ValidationError{
			{File: 1, Hunk: 1, Reason: diffutils.ErrOldCountMismatch, Declared: 5, Actual: 1},
			{File: 2, Hunk: -1, Reason: diffutils.ErrBinaryWithHunks, Actual: 1},
			{File: 3, Hunk: -1, Reason: diffutils.ErrMissingPath},
		}, errs)
	})
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  diffutils.ValidationError
		want string
	}{
		{
			name: "old count",
			err:  diffutils.ValidationError{File: 1, Hunk: 2, Reason: diffutils.ErrOldCountMismatch, Declared: 3, Actual: 4},
			want: "file 1 hunk 2: declares 3 old lines, has 4 context+removed",
		},
		{
			name: "new count",
			err:  diffutils.ValidationError{File: 0, Hunk: 0, Reason: diffutils.ErrNewCountMismatch, Declared: 1, Actual: 0},
			want: "file 0 hunk 0: declares 1 new lines, has 0 context+added",
		},
		{
			name: "binary",
			err:  diffutils.ValidationError{File: 2, Hunk: -1, Reason: diffutils.ErrBinaryWithHunks, Actual: 1},
			want: "file 2: binary file has 1 hunks",
		},
		{
			name: "missing path",
			err:  diffutils.ValidationError{File: 5, Hunk: -1, Reason: diffutils.ErrMissingPath},
			want: "file 5: source and destination are both empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
