// Package spreadsheet encodes and decodes the full dataset as an xlsx
// workbook, one sheet per table.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
	"assetsnapshot/internal/services"
)

const (
	SheetOwners      = "Owners"
	SheetBanks       = "Banks"
	SheetAccounts    = "Accounts"
	SheetBalanceLogs = "BalanceLogs"
	SheetAssets      = "Assets"
	SheetAssetLogs   = "AssetLogs"
	SheetConfig      = "ConfigOptions"
	SheetFXRates     = "FXRates"
)

// dateLayout matches the original export format.
const dateLayout = "01/02/2006"

// requiredSheets must all be present for an import to proceed.
var requiredSheets = []string{SheetOwners, SheetBanks, SheetAccounts, SheetBalanceLogs}

// Encode writes the dataset into a new workbook. The caller owns closing the
// returned file.
func Encode(ds *services.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSheet(f, SheetOwners, []string{"id", "name"}, len(ds.Owners), func(i int) []interface{} {
		o := ds.Owners[i]
		return []interface{}{o.ID, o.Name}
	}); err != nil {
		return nil, err
	}

	bankHeader := []string{"id", "owner_id", "name", "bank_name", "institution_type", "logo_color", "country", "last_updated"}
	if err := writeSheet(f, SheetBanks, bankHeader, len(ds.Banks), func(i int) []interface{} {
		b := ds.Banks[i]
		return []interface{}{b.ID, b.OwnerID, b.Name, b.BankName, b.InstitutionType, b.LogoColor, b.Country, formatDate(b.LastUpdated)}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetAccounts, []string{"id", "bank_id", "name", "type", "account_number"}, len(ds.Accounts), func(i int) []interface{} {
		a := ds.Accounts[i]
		return []interface{}{a.ID, a.BankID, a.Name, a.Type, a.AccountNumber}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetBalanceLogs, []string{"id", "account_id", "balance", "currency", "comment", "recorded_at"}, len(ds.Logs), func(i int) []interface{} {
		l := ds.Logs[i]
		return []interface{}{l.ID, l.AccountID, l.Balance, l.Currency, l.Comment, formatDate(l.RecordedAt)}
	}); err != nil {
		return nil, err
	}

	assetHeader := []string{"id", "owner_id", "name", "asset_type", "value", "currency", "purchase_price", "purchase_date", "country", "notes", "logo_color", "last_updated"}
	if err := writeSheet(f, SheetAssets, assetHeader, len(ds.Assets), func(i int) []interface{} {
		a := ds.Assets[i]
		purchase := ""
		if a.PurchaseDate != nil {
			purchase = formatDate(*a.PurchaseDate)
		}
		return []interface{}{a.ID, a.OwnerID, a.Name, a.AssetType, a.Value, a.Currency, a.PurchasePrice, purchase, a.Country, a.Notes, a.LogoColor, formatDate(a.LastUpdated)}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetAssetLogs, []string{"id", "asset_id", "type", "amount", "currency", "comment", "recorded_at"}, len(ds.AssetLogs), func(i int) []interface{} {
		l := ds.AssetLogs[i]
		return []interface{}{l.ID, l.AssetID, string(l.Type), l.Amount, l.Currency, l.Comment, formatDate(l.RecordedAt)}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetConfig, []string{"type", "value"}, len(ds.Options), func(i int) []interface{} {
		o := ds.Options[i]
		return []interface{}{o.Type, o.Value}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetFXRates, []string{"base", "target", "rate"}, len(ds.Rates), func(i int) []interface{} {
		r := ds.Rates[i]
		return []interface{}{r.BaseCurrency, r.TargetCurrency, r.Rate}
	}); err != nil {
		return nil, err
	}

	// excelize creates "Sheet1" by default; Owners replaces it
	return f, nil
}

func writeSheet(f *excelize.File, name string, header []string, rows int, row func(i int) []interface{}) error {
	if name == SheetOwners {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return err
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &cells); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses a workbook back into a dataset. Missing required sheets abort
// the decode; missing optional sheets leave the matching slice nil.
func Decode(r io.Reader) (*services.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	for _, name := range requiredSheets {
		if !present[name] {
			return nil, apperrors.WithMessage(apperrors.ErrMissingSheet, fmt.Sprintf("missing sheet %q", name))
		}
	}

	ds := &services.Dataset{}

	if err := readSheet(f, SheetOwners, func(cols row) error {
		ds.Owners = append(ds.Owners, models.Owner{
			ID:   cols.uint(0),
			Name: cols.str(1),
		})
		return cols.err
	}); err != nil {
		return nil, err
	}

	if err := readSheet(f, SheetBanks, func(cols row) error {
		ds.Banks = append(ds.Banks, models.Bank{
			ID:              cols.uint(0),
			OwnerID:         cols.uint(1),
			Name:            cols.str(2),
			BankName:        cols.str(3),
			InstitutionType: cols.str(4),
			LogoColor:       cols.str(5),
			Country:         cols.str(6),
			LastUpdated:     cols.date(7),
		})
		return cols.err
	}); err != nil {
		return nil, err
	}

	if err := readSheet(f, SheetAccounts, func(cols row) error {
		ds.Accounts = append(ds.Accounts, models.Account{
			ID:            cols.uint(0),
			BankID:        cols.uint(1),
			Name:          cols.str(2),
			Type:          cols.str(3),
			AccountNumber: cols.str(4),
		})
		return cols.err
	}); err != nil {
		return nil, err
	}

	if err := readSheet(f, SheetBalanceLogs, func(cols row) error {
		ds.Logs = append(ds.Logs, models.BalanceLog{
			ID:         cols.uint(0),
			AccountID:  cols.uint(1),
			Balance:    cols.float(2),
			Currency:   cols.str(3),
			Comment:    cols.str(4),
			RecordedAt: cols.date(5),
		})
		return cols.err
	}); err != nil {
		return nil, err
	}

	if present[SheetAssets] {
		if err := readSheet(f, SheetAssets, func(cols row) error {
			asset := models.Asset{
				ID:            cols.uint(0),
				OwnerID:       cols.uint(1),
				Name:          cols.str(2),
				AssetType:     cols.str(3),
				Value:         cols.float(4),
				Currency:      cols.str(5),
				PurchasePrice: cols.float(6),
				Country:       cols.str(8),
				Notes:         cols.str(9),
				LogoColor:     cols.str(10),
				LastUpdated:   cols.date(11),
			}
			if raw := cols.str(7); raw != "" {
				d := cols.dateAt(7)
				asset.PurchaseDate = &d
			}
			ds.Assets = append(ds.Assets, asset)
			return cols.err
		}); err != nil {
			return nil, err
		}
	}

	if present[SheetAssetLogs] {
		if err := readSheet(f, SheetAssetLogs, func(cols row) error {
			ds.AssetLogs = append(ds.AssetLogs, models.AssetLog{
				ID:         cols.uint(0),
				AssetID:    cols.uint(1),
				Type:       models.AssetLogType(cols.str(2)),
				Amount:     cols.float(3),
				Currency:   cols.str(4),
				Comment:    cols.str(5),
				RecordedAt: cols.date(6),
			})
			return cols.err
		}); err != nil {
			return nil, err
		}
	}

	if present[SheetConfig] {
		ds.Options = []models.ConfigOption{}
		if err := readSheet(f, SheetConfig, func(cols row) error {
			ds.Options = append(ds.Options, models.ConfigOption{
				Type:  cols.str(0),
				Value: cols.str(1),
			})
			return cols.err
		}); err != nil {
			return nil, err
		}
	}

	if present[SheetFXRates] {
		ds.Rates = []models.FXRate{}
		if err := readSheet(f, SheetFXRates, func(cols row) error {
			ds.Rates = append(ds.Rates, models.FXRate{
				BaseCurrency:   cols.str(0),
				TargetCurrency: cols.str(1),
				Rate:           cols.float(2),
				UpdatedAt:      time.Now().UTC(),
			})
			return cols.err
		}); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func readSheet(f *excelize.File, name string, consume func(cols row) error) error {
	rows, err := f.GetRows(name)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		if blankRow(cells) {
			continue
		}
		r := row{sheet: name, line: i + 1, cells: cells}
		if err := consume(r); err != nil {
			return apperrors.Wrap(apperrors.ErrImportFailed, err)
		}
	}
	return nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// row wraps one sheet row with sticky error handling: the first bad cell is
// recorded and reported after the row is consumed.
type row struct {
	sheet string
	line  int
	cells []string
	err   error
}

func (r *row) str(i int) string {
	if i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r *row) uint(i int) uint {
	raw := r.str(i)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		r.fail(i, err)
		return 0
	}
	return uint(v)
}

func (r *row) float(i int) float64 {
	raw := r.str(i)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(i, err)
		return 0
	}
	return v
}

func (r *row) date(i int) time.Time {
	return r.dateAt(i)
}

func (r *row) dateAt(i int) time.Time {
	raw := r.str(i)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
		return t
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		r.fail(i, err)
		return time.Time{}
	}
	return t.UTC()
}

func (r *row) fail(i int, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s row %d col %d: %w", r.sheet, r.line, i+1, err)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
