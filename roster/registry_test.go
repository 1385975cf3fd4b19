package roster_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/reimburse-engine/roster"
)

func textRow(cells ...string) roster.Row {
	row := make(roster.Row, len(cells))
	for i, c := range cells {
		row[i] = roster.TextCell(c)
	}
	return row
}

func TestBuildRegistry_SkipsHeaderAndBlankRows(t *testing.T) {
	rows := []roster.Row{
		textRow("Initials", "Name", "Email", "username", "Active"),
		textRow("", "ignored", "", "", ""),
		{},
		textRow("AB", "Alice Brown", "alice@example.com", "aliceb", "y"),
	}

	reg := roster.BuildRegistry(rows)

	require.Equal(t, 1, reg.Len())
	d, ok := reg.Get("AB")
	require.True(t, ok)
	assert.Equal(t, "Alice Brown", d.Name)
	assert.Equal(t, "alice@example.com", d.Email)
	assert.Equal(t, "aliceb", d.Username)
	assert.True(t, d.Active)
	assert.Empty(t, d.Dates)
}

func TestBuildRegistry_ActiveFlag(t *testing.T) {
	// Any non-blank activity cell means active; a blank one means inactive.
	rows := []roster.Row{
		textRow("AB", "Alice Brown", "a@x", "aliceb", "1"),
		textRow("CD", "Carol Davis", "c@x", "carold", ""),
		textRow("EF", "Ed Finch", "e@x", "edf"),
	}

	reg := roster.BuildRegistry(rows)

	ab, _ := reg.Get("AB")
	cd, _ := reg.Get("CD")
	ef, _ := reg.Get("EF")
	assert.True(t, ab.Active)
	assert.False(t, cd.Active)
	assert.False(t, ef.Active, "short row reads as trailing blanks")
}

func TestBuildRegistry_FirstName(t *testing.T) {
	rows := []roster.Row{
		textRow("AB", "Alice Brown", "a@x", "aliceb", "y"),
		textRow("MO", "Mononym", "m@x", "mono", "y"),
	}

	reg := roster.BuildRegistry(rows)

	ab, _ := reg.Get("AB")
	mo, _ := reg.Get("MO")
	assert.Equal(t, "Alice", ab.FirstName)
	assert.Equal(t, "Mononym", mo.FirstName, "name without a space yields the whole string")
}

func TestBuildRegistry_DuplicateInitialsOverwrite(t *testing.T) {
	// Last row wins; the entry keeps its original position.
	rows := []roster.Row{
		textRow("AB", "Alice Brown", "a@x", "aliceb", "y"),
		textRow("CD", "Carol Davis", "c@x", "carold", "y"),
		textRow("AB", "Andy Barnes", "andy@x", "andyb", ""),
	}

	reg := roster.BuildRegistry(rows)

	require.Equal(t, 2, reg.Len())
	ab, _ := reg.Get("AB")
	assert.Equal(t, "Andy Barnes", ab.Name)
	assert.False(t, ab.Active)

	order := reg.Directors()
	assert.Equal(t, "AB", order[0].Initials)
	assert.Equal(t, "CD", order[1].Initials)
}

func TestBuildRegistry_MissingFieldsPassThrough(t *testing.T) {
	// A row with initials but nothing else still yields a director; this
	// layer does not validate.
	reg := roster.BuildRegistry([]roster.Row{textRow("XY")})

	d, ok := reg.Get("XY")
	require.True(t, ok)
	assert.Empty(t, d.Name)
	assert.Empty(t, d.Email)
	assert.False(t, d.Active)
}

func TestDirector_Payable(t *testing.T) {
	d := &roster.Director{Dates: []string{"01 Jan 2024", "08 Jan 2024"}}

	assert.True(t, decimal.NewFromInt(6).Equal(d.Payable(decimal.NewFromInt(3))))
	assert.True(t, decimal.RequireFromString("7.5").Equal(d.Payable(decimal.RequireFromString("3.75"))))
	assert.True(t, decimal.Zero.Equal((&roster.Director{}).Payable(decimal.NewFromInt(3))))
}
