// Package export renders subscription collections into downloadable files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/subtrack/backend/internal/domain/entity"
)

// BuildSubscriptionXLSX renders the subscription collection and its spending
// summary as an XLSX workbook.
func BuildSubscriptionXLSX(subscriptions []*entity.Subscription, stats *entity.SubscriptionStats) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	subsSheet := "subscriptions"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(subsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Subscription Summary")
	_ = f.SetCellValue(summarySheet, "A3", "Active subscriptions")
	_ = f.SetCellValue(summarySheet, "B3", stats.TotalActive)
	_ = f.SetCellValue(summarySheet, "A4", "Monthly spend")
	_ = f.SetCellValue(summarySheet, "B4", stats.TotalMonthlySpend.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A5", "Yearly spend")
	_ = f.SetCellValue(summarySheet, "B5", stats.TotalYearlySpend.InexactFloat64())

	_ = f.SetCellValue(summarySheet, "A7", "Category")
	_ = f.SetCellValue(summarySheet, "B7", "Active count")
	row := 8
	for _, category := range entity.Categories {
		count, ok := stats.CategoryBreakdown[category]
		if !ok {
			continue
		}
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(category))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), count)
		row++
	}

	headers := []string{"Name", "Category", "Price", "Currency", "Billing cycle", "Monthly amount", "Next billing", "Active", "Crypto"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(subsSheet, cell, header)
	}
	for i, subscription := range subscriptions {
		rowNum := i + 2
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("A%d", rowNum), subscription.Name)
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("B%d", rowNum), string(subscription.Category))
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("C%d", rowNum), subscription.Price.InexactFloat64())
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("D%d", rowNum), subscription.Currency)
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("E%d", rowNum), string(subscription.BillingCycle))
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("F%d", rowNum), subscription.MonthlyAmount().InexactFloat64())
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("G%d", rowNum), subscription.NextBillingDate.Format("2006-01-02"))
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("H%d", rowNum), subscription.IsActive)
		_ = f.SetCellValue(subsSheet, fmt.Sprintf("I%d", rowNum), subscription.IsCryptoEnabled)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
