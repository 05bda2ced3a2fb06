package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(userID, categoryID, amount string, day int) models.ExpenseDetail {
	return models.ExpenseDetail{
		Expense: models.Expense{
			Amount:      decimal.RequireFromString(amount),
			Date:        time.Date(2024, time.June, day, 12, 0, 0, 0, time.UTC),
			CategoryID:  categoryID,
			CreatedByID: userID,
		},
		Category:  models.Category{ID: categoryID, Name: "cat-" + categoryID},
		CreatedBy: models.UserSummary{ID: userID, Name: "user-" + userID},
	}
}

func TestBuildReport_RoundsSumNotItems(t *testing.T) {
	report := BuildReport([]models.ExpenseDetail{
		detail("u1", "c1", "10.005", 15),
		detail("u1", "c1", "10.004", 15),
	})

	require.NotNil(t, report.TopUser)
	assert.Equal(t, "20.01", report.TopUser.Total.StringFixed(2))
	assert.Equal(t, "u1", report.TopUser.User.ID)
	assert.Equal(t, "20.01", report.TopCategory.Total.StringFixed(2))
	assert.Equal(t, "2024-06-15", report.PeakDay.Date)
	assert.Equal(t, "20.01", report.PeakDay.Total.StringFixed(2))
}

func TestBuildReport_TiesGoToFirstSeen(t *testing.T) {
	report := BuildReport([]models.ExpenseDetail{
		detail("u1", "c1", "5.00", 1),
		detail("u2", "c2", "5.00", 2),
	})

	assert.Equal(t, "u1", report.TopUser.User.ID)
	assert.Equal(t, "c1", report.TopCategory.Category.ID)
	assert.Equal(t, "2024-06-01", report.PeakDay.Date)
}

func TestBuildReport_ComparesRoundedTotals(t *testing.T) {
	// 10.004 and 10.001 both round to 10.00, so the first one wins
	report := BuildReport([]models.ExpenseDetail{
		detail("u1", "c1", "10.001", 1),
		detail("u2", "c1", "10.004", 2),
	})

	assert.Equal(t, "u1", report.TopUser.User.ID)
	assert.Equal(t, "10", report.TopUser.Total.String())
	assert.Equal(t, "20.01", report.TopCategory.Total.StringFixed(2))
}

func TestBuildReport_HighestWins(t *testing.T) {
	report := BuildReport([]models.ExpenseDetail{
		detail("u1", "c1", "3", 1),
		detail("u2", "c2", "7", 1),
		detail("u1", "c2", "1", 2),
	})

	assert.Equal(t, "u2", report.TopUser.User.ID)
	assert.Equal(t, "c2", report.TopCategory.Category.ID)
	assert.Equal(t, "8", report.TopCategory.Total.String())
	assert.Equal(t, "2024-06-01", report.PeakDay.Date)
	assert.Equal(t, "10", report.PeakDay.Total.String())
}

func TestBuildReport_SkipsDeletedCreators(t *testing.T) {
	report := BuildReport([]models.ExpenseDetail{detail("", "c1", "4", 1)})

	assert.Nil(t, report.TopUser)
	require.NotNil(t, report.TopCategory)
	require.NotNil(t, report.PeakDay)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil)

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"topUser":null,"topCategory":null,"peakDay":null}`, string(body))
}
