package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

type unit struct {
	Ident       string
	Name        string
	Code        string
	Centimeters string
}

// baseCode is the unit used for stored lengths, it gets index 0.
const baseCode = "cm"

func main() {
	// Open the input file and read its contents
	data, err := readCsvFile(filepath.Join("scripts", "unit", "unit_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %v", err))
	}

	// Convert the CSV records to a list of unit objects
	units, err := convertDataToUnits(data)
	if err != nil {
		panic(fmt.Errorf("error converting CSV records: %v", err))
	}

	// Generate Go code from the unit objects using a template
	code, err := generateGoCode(filepath.Join("scripts", "unit", "unit_data.tmpl"), units)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("unit_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	// Open the CSV file
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	// Read the CSV records
	reader := csv.NewReader(in)
	_, err = reader.Read() // header
	if err != nil {
		return nil, err
	}
	recs, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return recs, nil
}

func convertDataToUnits(data [][]string) ([]unit, error) {
	// Every factor must be an exact decimal
	factors := make(map[string]*big.Rat, len(data))
	for _, rec := range data {
		f, ok := new(big.Rat).SetString(rec[3])
		if !ok || f.Sign() <= 0 {
			return nil, fmt.Errorf("unit %v: invalid factor %q", rec[2], rec[3])
		}
		factors[rec[2]] = f
	}

	// Sort the CSV records by factor, with the base unit first
	less := func(i, j int) bool {
		a := data[i][2]
		b := data[j][2]
		switch {
		case a == baseCode:
			return true
		case b == baseCode:
			return false
		}
		return factors[a].Cmp(factors[b]) < 0
	}
	sort.Slice(data, less)

	// Convert the CSV records to unit objects
	units := []unit{}
	for _, rec := range data {
		u := unit{
			Ident:       rec[0],
			Name:        rec[1],
			Code:        rec[2],
			Centimeters: rec[3],
		}
		units = append(units, u)
	}
	return units, nil
}

func generateGoCode(filename string, units []unit) ([]byte, error) {
	// Create a new template object from the template file
	fmap := template.FuncMap{
		"lower": strings.ToLower,
	}
	tmpl, err := template.New(filepath.Base(filename)).Funcs(fmap).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	// Execute the template
	var output bytes.Buffer
	err = tmpl.Execute(&output, units)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

func writeToFile(filename string, content []byte) error {
	// Write the content to a file
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	return writer.Flush()
}
