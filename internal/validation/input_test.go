package validation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func validDraft() models.FloodReportDraft {
	return models.FloodReportDraft{
		Location:   models.Location{Lat: -23.9535, Lng: -46.3350},
		Address:    "Rua Amador Bueno, Centro, Santos",
		Severity:   models.SeveritySevere,
		ReportedAt: time.Date(2025, 2, 10, 7, 0, 0, 0, time.UTC),
		ReportedBy: "anonymous",
	}
}

func TestValidateFloodReportDraft_Valid(t *testing.T) {
	d := validDraft()
	d.Comments = strPtr("carros ilhados")
	d.ImageURL = strPtr("https://cdn.example.com/flood.jpg")

	assert.NoError(t, ValidateFloodReportDraft(d))
}

func TestValidateFloodReportDraft_Invalid(t *testing.T) {
	cases := map[string]struct {
		mutate func(d *models.FloodReportDraft)
		want   string
	}{
		"severity zero":    {func(d *models.FloodReportDraft) { d.Severity = 0 }, "уровень"},
		"severity four":    {func(d *models.FloodReportDraft) { d.Severity = 4 }, "уровень"},
		"nan latitude":     {func(d *models.FloodReportDraft) { d.Location.Lat = math.NaN() }, "конечными"},
		"inf longitude":    {func(d *models.FloodReportDraft) { d.Location.Lng = math.Inf(1) }, "конечными"},
		"lat out of range": {func(d *models.FloodReportDraft) { d.Location.Lat = 91 }, "широта"},
		"lng out of range": {func(d *models.FloodReportDraft) { d.Location.Lng = -181 }, "долгота"},
		"blank address":    {func(d *models.FloodReportDraft) { d.Address = "   " }, "адрес"},
		"long address":     {func(d *models.FloodReportDraft) { d.Address = strings.Repeat("a", MaxAddressLength+1) }, "адрес"},
		"zero reportedAt":  {func(d *models.FloodReportDraft) { d.ReportedAt = time.Time{} }, "время"},
		"blank reporter":   {func(d *models.FloodReportDraft) { d.ReportedBy = "" }, "автор"},
		"long comments":    {func(d *models.FloodReportDraft) { d.Comments = strPtr(strings.Repeat("x", MaxCommentsLength+1)) }, "комментарий"},
		"ftp image":        {func(d *models.FloodReportDraft) { d.ImageURL = strPtr("ftp://host/img.png") }, "http"},
		"hostless image":   {func(d *models.FloodReportDraft) { d.ImageURL = strPtr("https:///img.png") }, "доменное"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			err := ValidateFloodReportDraft(d)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.want)
			}
		})
	}
}

func TestValidateImageURL_EmptyIsAllowed(t *testing.T) {
	assert.NoError(t, ValidateImageURL(nil))
	assert.NoError(t, ValidateImageURL(strPtr("")))
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("поле", "ção", 3, 3))
	assert.Error(t, ValidateLength("поле", "ab", 3, 0))
	assert.Error(t, ValidateLength("поле", "abcd", 0, 3))
}
