package server

import (
	"strings"
	"time"
)

type analyzeRequest struct {
	Lang        string `json:"lang"`
	Name        string `json:"name"`
	ChineseName string `json:"chinese_name"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	Condition   string `json:"condition"`
	Referrer    string `json:"referrer"`
	Angel       string `json:"angel"`
	Details     string `json:"details"`
	// Clients send these as JSON number or string interchangeably.
	DOBYear  any `json:"dob_year"`
	DOBMonth any `json:"dob_month"`
	DOBDay   any `json:"dob_day"`
	Height   any `json:"height"`
	Weight   any `json:"weight"`
}

type healthProfile struct {
	Name        string
	ChineseName string
	Gender      string
	Country     string
	Condition   string
	Referrer    string
	Angel       string
	Details     string
	Height      string
	Weight      string
	DOB         string
	Age         int
	Notes       string
}

func buildHealthProfile(req analyzeRequest, now time.Time) healthProfile {
	dob := toString(req.DOBYear) + "-" + zeroPad2(toString(req.DOBMonth)) + "-" + zeroPad2(toString(req.DOBDay))

	notes := req.Details
	if notes == "" {
		notes = notesPlaceholder
	}

	return healthProfile{
		Name:        req.Name,
		ChineseName: req.ChineseName,
		Gender:      req.Gender,
		Country:     req.Country,
		Condition:   req.Condition,
		Referrer:    req.Referrer,
		Angel:       req.Angel,
		Details:     req.Details,
		Height:      toString(req.Height),
		Weight:      toString(req.Weight),
		DOB:         dob,
		Age:         computeAge(dob, now),
		Notes:       notes,
	}
}

func computeAge(dob string, now time.Time) int {
	birth, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func zeroPad2(value string) string {
	if len(value) >= 2 {
		return value
	}
	return strings.Repeat("0", 2-len(value)) + value
}
