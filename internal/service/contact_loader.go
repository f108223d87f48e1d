// internal/service/contact_loader.go
package service

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	appErrors "github.com/unclebandit/coldreach-backend/internal/errors"
	"github.com/unclebandit/coldreach-backend/internal/model"
)

// Column aliases tried in order when resolving a logical field from a
// contact source header row. The first alias present with a non-empty,
// non-"TBD" value wins.
var (
	companyAliases   = []string{"company_name", "Organization Name", "organization_name", "Company", "company", "Company Name"}
	emailAliases     = []string{"founder_email", "Email", "email", "Founder Email", "contact_email", "Contact Email"}
	nameAliases      = []string{"founder_name", "Full Name", "full_name", "Founder Name", "Name", "name"}
	firstNameAliases = []string{"First Name", "first_name", "First_Name"}
	lastNameAliases  = []string{"Last Name", "last_name", "Last_Name"}
	websiteAliases   = []string{"website", "Organization Domain", "organization_domain", "Website", "domain", "Domain", "url", "URL"}
	industryAliases  = []string{"industry", "Industry", "sector", "Sector", "category", "Category"}
	notesAliases     = []string{"notes", "Notes", "batch", "Batch", "description", "Description"}
	statusAliases    = []string{"status", "Status"}
)

const defaultIndustry = "Technology"

// columnValue returns the first non-empty, non-placeholder value among
// the given aliases.
func columnValue(row map[string]string, aliases []string) string {
	for _, name := range aliases {
		if v, ok := row[name]; ok {
			v = strings.TrimSpace(v)
			if v != "" && strings.ToUpper(v) != "TBD" {
				return v
			}
		}
	}
	return ""
}

// LoadContacts reads a CSV contact source and normalizes heterogeneous
// column names into Contact records. Rows not marked ACTIVE are dropped
// when activeOnly is set; rows missing a valid email or a company name
// are always dropped. A missing or malformed source is reported to the
// caller together with an empty slice so the error stays non-fatal.
func LoadContacts(path string, activeOnly bool) ([]model.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("contact source not found:", path)
			return []model.Contact{}, appErrors.NewSourceNotFound(path)
		}
		log.Println("failed to open contact source:", err)
		return []model.Contact{}, appErrors.NewSourceParse(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		log.Println("failed to parse contact source:", err)
		return []model.Contact{}, appErrors.NewSourceParse(path, err)
	}
	if len(records) == 0 {
		return []model.Contact{}, nil
	}

	header := records[0]
	contacts := []model.Contact{}

	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}

		companyName := columnValue(row, companyAliases)
		founderEmail := columnValue(row, emailAliases)

		founderName := columnValue(row, nameAliases)
		if founderName == "" {
			first := columnValue(row, firstNameAliases)
			last := columnValue(row, lastNameAliases)
			founderName = strings.TrimSpace(first + " " + last)
		}

		website := columnValue(row, websiteAliases)
		industry := columnValue(row, industryAliases)
		if industry == "" {
			industry = defaultIndustry
		}
		notes := columnValue(row, notesAliases)

		if activeOnly {
			status := columnValue(row, statusAliases)
			if !strings.EqualFold(status, "ACTIVE") {
				continue
			}
		}

		if founderEmail == "" || !strings.Contains(founderEmail, "@") || companyName == "" {
			continue
		}

		contacts = append(contacts, model.Contact{
			CompanyName:  companyName,
			FounderEmail: founderEmail,
			FounderName:  founderName,
			Website:      website,
			Industry:     industry,
			Notes:        notes,
		})
	}

	log.Printf("Loaded %d contacts from %s\n", len(contacts), path)
	return contacts, nil
}
