package report_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/reimburse-engine/report"
	"github.com/phoenix/reimburse-engine/roster"
)

func registryWith(directors ...*roster.Director) *roster.Registry {
	reg := roster.NewRegistry()
	for _, d := range directors {
		reg.Add(d)
	}
	return reg
}

func TestBuild_AggregatesPayables(t *testing.T) {
	// GIVEN: Two active directors with attributed dates, rate 3
	// WHEN: Building the report
	// THEN: Each line carries dates x rate, totals line carries the sum
	reg := registryWith(
		&roster.Director{Initials: "AB", Name: "Alice Brown", Username: "aliceb", Active: true,
			Dates: []string{"08 Jan 2024", "14 Feb 2024"}},
		&roster.Director{Initials: "CD", Name: "Carol Davis", Username: "carold", Active: true,
			Dates: []string{"10 Jan 2024"}},
	)

	rep := report.Build(reg, decimal.NewFromInt(3))

	require.Len(t, rep.Display, 4) // heading + 2 directors + total
	assert.Equal(t, fmt.Sprintf("%-20s %-10s %4s %s", "Name", "Username", "Fee", "Dates directed"), rep.Display[0])
	assert.Equal(t, fmt.Sprintf("%-20s %-10s %4s %s", "Alice Brown", "aliceb", "6", "08 Jan 2024, 14 Feb 2024"), rep.Display[1])
	assert.Equal(t, fmt.Sprintf("%-20s %-10s %4s %s", "Carol Davis", "carold", "3", "10 Jan 2024"), rep.Display[2])
	assert.Equal(t, fmt.Sprintf("%-20s %-10s %4s", "Total", "", "9"), rep.Display[3])
	assert.True(t, decimal.NewFromInt(9).Equal(rep.Total))
}

func TestBuild_ExportForm(t *testing.T) {
	reg := registryWith(
		&roster.Director{Initials: "AB", Name: "Alice Brown", Username: "aliceb", Active: true,
			Dates: []string{"08 Jan 2024", "14 Feb 2024"}},
	)

	rep := report.Build(reg, decimal.NewFromInt(3))

	require.Len(t, rep.Export, 3)
	assert.Equal(t, "Name,Username,Fee,Dates directed", rep.Export[0])
	assert.Equal(t, "Alice Brown,aliceb,6,08 Jan 2024, 14 Feb 2024", rep.Export[1])
	assert.Equal(t, "Total,,6", rep.Export[2])
}

func TestBuild_ExcludesInactiveAndZero(t *testing.T) {
	// Inactive directors and directors with no attributed dates never
	// appear in either report body.
	reg := registryWith(
		&roster.Director{Initials: "AB", Name: "Alice Brown", Username: "aliceb", Active: true,
			Dates: []string{"08 Jan 2024"}},
		&roster.Director{Initials: "CD", Name: "Carol Davis", Username: "carold", Active: false,
			Dates: []string{"10 Jan 2024"}},
		&roster.Director{Initials: "EF", Name: "Ed Finch", Username: "edf", Active: true,
			Dates: []string{}},
	)

	rep := report.Build(reg, decimal.NewFromInt(3))

	require.Len(t, rep.Display, 3) // heading + AB + total
	body := strings.Join(rep.Display, "\n")
	assert.NotContains(t, body, "Carol Davis")
	assert.NotContains(t, body, "Ed Finch")
	assert.True(t, decimal.NewFromInt(3).Equal(rep.Total), "excluded directors do not count toward the total")
}

func TestBuild_FractionalRateUsesTwoDecimals(t *testing.T) {
	// A fractional rate switches every amount, total included, to
	// two-decimal rendering in both forms.
	reg := registryWith(
		&roster.Director{Initials: "AB", Name: "Alice Brown", Username: "aliceb", Active: true,
			Dates: []string{"08 Jan 2024", "14 Feb 2024"}},
	)

	rep := report.Build(reg, decimal.RequireFromString("3.75"))

	assert.Contains(t, rep.Display[1], "7.50")
	assert.Equal(t, "Alice Brown,aliceb,7.50,08 Jan 2024, 14 Feb 2024", rep.Export[1])
	assert.Equal(t, "Total,,7.50", rep.Export[2])
}

func TestBuild_KeepsRegistryOrder(t *testing.T) {
	// Rows follow registry insertion order, not alphabetical order.
	reg := registryWith(
		&roster.Director{Initials: "ZZ", Name: "Zoe Zhang", Username: "zoez", Active: true,
			Dates: []string{"08 Jan 2024"}},
		&roster.Director{Initials: "AB", Name: "Alice Brown", Username: "aliceb", Active: true,
			Dates: []string{"10 Jan 2024"}},
	)

	rep := report.Build(reg, decimal.NewFromInt(3))

	require.Len(t, rep.Display, 4)
	assert.Contains(t, rep.Display[1], "Zoe Zhang")
	assert.Contains(t, rep.Display[2], "Alice Brown")
}

func TestBuild_EmptyRegistry(t *testing.T) {
	rep := report.Build(roster.NewRegistry(), decimal.NewFromInt(3))

	require.Len(t, rep.Display, 2) // heading + total
	assert.Equal(t, "Total,,0", rep.Export[1])
	assert.True(t, rep.Total.IsZero())
}
