package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	csvimport "github.com/retailops/backoffice/internal/infrastructure/import"
	"github.com/shopspring/decimal"
)

// Item import CSV columns. brand_id, group_id, reorder_level, base_uom
// and base_factor are optional; base_uom and base_factor go together.
var (
	requiredImportHeaders = []string{"item_code", "name", "primary_uom", "avg_cost", "selling_price"}
)

// ImportResult summarizes an item import run. A run with errors
// imports nothing.
type ImportResult struct {
	TotalRows   int                  `json:"total_rows"`
	Imported    int                  `json:"imported"`
	Errors      []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors int                  `json:"total_errors,omitempty"`
	IsTruncated bool                 `json:"is_truncated,omitempty"`
}

// ImportService loads catalog items from CSV files
type ImportService struct {
	itemRepo catalog.ItemRepository
}

// NewImportService creates a new ImportService
func NewImportService(itemRepo catalog.ItemRepository) *ImportService {
	return &ImportService{itemRepo: itemRepo}
}

// ImportItems parses and validates the whole file, then persists the
// items. Any row error rejects the entire file.
func (s *ImportService) ImportItems(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, err
	}

	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders(requiredImportHeaders); len(missing) > 0 {
		collected := csvimport.NewErrorCollection(len(missing))
		for _, column := range missing {
			collected.AddRequiredError(1, column)
		}
		return resultWithErrors(0, collected), nil
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, csvimport.ErrNoDataRows
	}

	collected := csvimport.NewErrorCollection(100)
	seenCodes := make(map[string]bool, len(rows))
	items := make([]*catalog.Item, 0, len(rows))

	for _, row := range rows {
		item := s.buildItem(ctx, row, seenCodes, collected)
		if item != nil {
			items = append(items, item)
		}
	}

	if collected.HasErrors() {
		return resultWithErrors(len(rows), collected), nil
	}

	for _, item := range items {
		if err := s.itemRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	}

	return &ImportResult{TotalRows: len(rows), Imported: len(items)}, nil
}

// buildItem validates one row and constructs the item. It returns nil
// when the row is rejected, recording the reasons in collected.
func (s *ImportService) buildItem(ctx context.Context, row *csvimport.Row, seenCodes map[string]bool, collected *csvimport.ErrorCollection) *catalog.Item {
	valid := true

	itemCode := row.Get("item_code")
	if itemCode == "" {
		collected.AddRequiredError(row.LineNumber, "item_code")
		valid = false
	} else if seenCodes[itemCode] {
		collected.AddDuplicateError(row.LineNumber, "item_code", itemCode, false)
		valid = false
	} else {
		seenCodes[itemCode] = true
		exists, err := s.itemRepo.ExistsByItemCode(ctx, itemCode)
		if err == nil && exists {
			collected.AddDuplicateError(row.LineNumber, "item_code", itemCode, true)
			valid = false
		}
	}

	name := row.Get("name")
	if name == "" {
		collected.AddRequiredError(row.LineNumber, "name")
		valid = false
	}

	primaryUom := row.Get("primary_uom")
	if primaryUom == "" {
		collected.AddRequiredError(row.LineNumber, "primary_uom")
		valid = false
	}

	brandID := parseOptionalUUID(row, "brand_id", collected, &valid)
	groupID := parseOptionalUUID(row, "group_id", collected, &valid)

	avgCost := parseDecimal(row, "avg_cost", collected, &valid)
	sellingPrice := parseDecimal(row, "selling_price", collected, &valid)

	reorderLevel := decimal.Zero
	if raw := row.Get("reorder_level"); raw != "" {
		reorderLevel = parseDecimal(row, "reorder_level", collected, &valid)
	}

	baseUom := row.Get("base_uom")
	baseFactor := decimal.Zero
	if baseUom != "" {
		raw := row.Get("base_factor")
		if raw == "" {
			collected.AddRequiredError(row.LineNumber, "base_factor")
			valid = false
		} else {
			baseFactor = parseDecimal(row, "base_factor", collected, &valid)
		}
	}

	if !valid {
		return nil
	}

	item, err := catalog.NewItem(itemCode, name, brandID, groupID, primaryUom, avgCost, sellingPrice)
	if err != nil {
		collected.AddValueError(row.LineNumber, "item_code", err.Error(), itemCode)
		return nil
	}
	if err := item.SetReorderLevel(reorderLevel); err != nil {
		collected.AddValueError(row.LineNumber, "reorder_level", err.Error(), reorderLevel.String())
		return nil
	}
	if baseUom != "" {
		if err := item.LinkBaseUnit(baseUom, baseFactor); err != nil {
			collected.AddValueError(row.LineNumber, "base_uom", err.Error(), baseUom)
			return nil
		}
	}

	return item
}

func parseOptionalUUID(row *csvimport.Row, column string, collected *csvimport.ErrorCollection, valid *bool) uuid.UUID {
	raw := row.Get(column)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		collected.AddTypeError(row.LineNumber, column, "UUID", raw)
		*valid = false
		return uuid.Nil
	}
	return id
}

func parseDecimal(row *csvimport.Row, column string, collected *csvimport.ErrorCollection, valid *bool) decimal.Decimal {
	raw := row.Get(column)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		collected.AddTypeError(row.LineNumber, column, "decimal number", raw)
		*valid = false
		return decimal.Zero
	}
	return value
}

func resultWithErrors(totalRows int, collected *csvimport.ErrorCollection) *ImportResult {
	return &ImportResult{
		TotalRows:   totalRows,
		Errors:      collected.Errors(),
		TotalErrors: collected.TotalCount(),
		IsTruncated: collected.IsTruncated(),
	}
}
