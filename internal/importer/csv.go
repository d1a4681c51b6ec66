package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/clearledger/blogen/internal/content"
	"github.com/clearledger/blogen/internal/models"
)

// Columns is the recognized CSV header, in template order.
var Columns = []string{
	"title", "date", "author", "category", "excerpt",
	"featuredImage", "imageAlt", "seoTitle", "metaDescription",
	"tags", "readingTime", "featured", "status", "content",
}

// ParseCSV converts delimited text with a header row into an ordered
// sequence of import rows. Unknown columns are ignored; fully empty
// rows are skipped.
func ParseCSV(r io.Reader) ([]models.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, errors.New("empty CSV file")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []models.ImportRow
	for _, record := range records[1:] {
		empty := true
		for _, v := range record {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		rows = append(rows, models.ImportRow{
			Title:           field(record, "title"),
			Date:            field(record, "date"),
			Author:          field(record, "author"),
			Category:        field(record, "category"),
			Excerpt:         field(record, "excerpt"),
			FeaturedImage:   field(record, "featuredImage"),
			ImageAlt:        field(record, "imageAlt"),
			SEOTitle:        field(record, "seoTitle"),
			MetaDescription: field(record, "metaDescription"),
			Tags:            field(record, "tags"),
			ReadingTime:     field(record, "readingTime"),
			Featured:        field(record, "featured"),
			Status:          field(record, "status"),
			Content:         field(record, "content"),
		})
	}

	return rows, nil
}

// Validator checks import rows before any remote action is attempted.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// Report errors under the CSV column names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateRows checks every row and returns the aggregated list of
// row-indexed errors (1-based). A non-empty result blocks the whole
// batch; no network call is made until the input is clean.
func (v *Validator) ValidateRows(rows []models.ImportRow) []string {
	var errs []string

	for i, row := range rows {
		rowNum := i + 1

		if err := v.validate.Struct(row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs = append(errs, fmt.Sprintf("Row %d: %s", rowNum, fieldErrorMessage(fe)))
				}
				continue
			}
			errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		if _, err := content.ParseDate(row.Date); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		if Slugify(row.Title) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: title %q produces an empty slug", rowNum, row.Title))
		}
	}

	return errs
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing required field %s", fe.Field())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
