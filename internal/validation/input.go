package validation

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/flood-alert-backend/internal/models"
)

// Константы валидации
const (
	MaxAddressLength    = 500
	MaxReportedByLength = 100
	MaxCommentsLength   = 2000
	MaxImageURLLength   = 1000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateLocation проверяет координаты WGS84.
func ValidateLocation(loc models.Location) error {
	if math.IsNaN(loc.Lat) || math.IsInf(loc.Lat, 0) || math.IsNaN(loc.Lng) || math.IsInf(loc.Lng, 0) {
		return fmt.Errorf("координаты должны быть конечными числами")
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return fmt.Errorf("широта должна быть в диапазоне от -90 до 90")
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		return fmt.Errorf("долгота должна быть в диапазоне от -180 до 180")
	}
	return nil
}

// ValidateSeverity проверяет уровень подтопления.
func ValidateSeverity(s models.Severity) error {
	if !s.IsValid() {
		return fmt.Errorf("уровень подтопления должен быть 1, 2 или 3")
	}
	return nil
}

// ValidateImageURL проверяет ссылку на фото.
func ValidateImageURL(link *string) error {
	if link == nil || *link == "" {
		return nil
	}

	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength("ссылка на фото", linkStr, 0, MaxImageURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("ссылка должна содержать доменное имя")
	}
	return nil
}

// ValidateFloodReportDraft проверяет черновик отчёта до обращения к хранилищу.
func ValidateFloodReportDraft(d models.FloodReportDraft) error {
	if err := ValidateLocation(d.Location); err != nil {
		return err
	}
	if err := ValidateNonEmpty("адрес", d.Address); err != nil {
		return err
	}
	if err := ValidateLength("адрес", strings.TrimSpace(d.Address), 0, MaxAddressLength); err != nil {
		return err
	}
	if err := ValidateSeverity(d.Severity); err != nil {
		return err
	}
	if d.ReportedAt.IsZero() {
		return fmt.Errorf("время отчёта обязательно")
	}
	if err := ValidateNonEmpty("автор отчёта", d.ReportedBy); err != nil {
		return err
	}
	if err := ValidateLength("автор отчёта", strings.TrimSpace(d.ReportedBy), 0, MaxReportedByLength); err != nil {
		return err
	}
	if d.Comments != nil {
		if err := ValidateLength("комментарий", *d.Comments, 0, MaxCommentsLength); err != nil {
			return err
		}
	}
	return ValidateImageURL(d.ImageURL)
}
