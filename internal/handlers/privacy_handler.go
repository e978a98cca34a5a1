package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oliverbeck/peakstatus/internal/dto"
)

// PolicySection is one titled block of bullet strings.
type PolicySection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// PolicyDocument is the versioned privacy policy rendered by the
// registration consent UI.
type PolicyDocument struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Sections    []PolicySection `json:"sections"`
}

type PrivacyHandler struct {
	document PolicyDocument
}

func NewPrivacyHandler() *PrivacyHandler {
	return &PrivacyHandler{document: PolicyDocument{
		Version:     "1.1",
		LastUpdated: "2026-02-10",
		Sections: []PolicySection{
			{
				Title: "Information We Collect",
				Content: []string{
					"Your chosen username and a one-way hash of your password.",
					"Status entries you record: hydration timestamps and altitude ratings.",
					"Login timestamps used to show account activity.",
				},
			},
			{
				Title: "How We Use Your Information",
				Content: []string{
					"To authenticate your account and authorize access by role.",
					"To display the tracked status and its history to registered viewers.",
					"We do not sell or share your data with third parties.",
				},
			},
			{
				Title: "Data Retention",
				Content: []string{
					"Status history is kept until the owning admin deletes it.",
					"Deleting a user account does not retroactively erase issued tokens; they expire within 24 hours.",
				},
			},
			{
				Title: "Contact",
				Content: []string{
					"Questions about this policy: support@peakstatus.app",
				},
			},
		},
	}}
}

func (h *PrivacyHandler) Policy(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.document))
}
