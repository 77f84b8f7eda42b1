package parser

import (
	"testing"
)

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{"empty", nil, -1},
		{"blank rows only", [][]string{{}, {"", " "}}, -1},
		{"first row", [][]string{{"Código"}, {"A"}}, 0},
		{"after blanks", [][]string{{}, {""}, {"", "Empresa"}}, 2},
	}

	for _, tt := range tests {
		if got := findHeaderRow(tt.rows); got != tt.expected {
			t.Errorf("%s: findHeaderRow() = %d, expected %d", tt.name, got, tt.expected)
		}
	}
}

func TestMapColumns(t *testing.T) {
	columns := mapColumns([]string{"", " Código", "Empresa ", "Dias", "Empresa", "Validade"})

	expected := []column{
		{Name: "Código", Index: 1},
		{Name: "Empresa", Index: 2},
		{Name: "Dias", Index: 3},
		{Name: "Validade", Index: 5},
	}
	if len(columns) != len(expected) {
		t.Fatalf("mapColumns() = %v, expected %v", columns, expected)
	}
	for i := range expected {
		if columns[i] != expected[i] {
			t.Errorf("columns[%d] = %+v, expected %+v", i, columns[i], expected[i])
		}
	}
}
