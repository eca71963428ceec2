package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
)

// templateRecord is the on-disk shape of one company template file
// (.json, .yaml or .yml).
type templateRecord struct {
	Name           string                       `json:"name" yaml:"name"`
	CompanyInfo    companyInfoRecord            `json:"company_info" yaml:"company_info"`
	PaymentMethods map[string]map[string]string `json:"payment_methods" yaml:"payment_methods"`
	VATRate        *float64                     `json:"vat_rate" yaml:"vat_rate"`
	LogoFile       string                       `json:"logo_file" yaml:"logo_file"`
	DefaultFooter  map[string]string            `json:"default_footer" yaml:"default_footer"`
	Language       string                       `json:"default_language" yaml:"default_language"`
	Currency       string                       `json:"default_currency" yaml:"default_currency"`
}

type companyInfoRecord struct {
	Address      string   `json:"address" yaml:"address"`
	PostalCode   string   `json:"postal_code" yaml:"postal_code"`
	City         string   `json:"city" yaml:"city"`
	Country      string   `json:"country" yaml:"country"`
	TaxID        string   `json:"tax_id" yaml:"tax_id"`
	Phone        string   `json:"phone" yaml:"phone"`
	Email        string   `json:"email" yaml:"email"`
	Website      string   `json:"website" yaml:"website"`
	OpeningHours []string `json:"opening_hours" yaml:"opening_hours"`
}

type fileTemplateRepository struct {
	templatesDir string
	logosDir     string

	mu       sync.RWMutex
	profiles map[string]*entity.CompanyProfile
	files    map[string]string // company name -> file path
}

// NewFileTemplateRepository loads every template record from templatesDir.
// Malformed records are logged and skipped; a missing directory yields an
// empty registry, never an error.
func NewFileTemplateRepository(templatesDir, logosDir string) domainRepo.TemplateRepository {
	r := &fileTemplateRepository{
		templatesDir: templatesDir,
		logosDir:     logosDir,
		profiles:     make(map[string]*entity.CompanyProfile),
		files:        make(map[string]string),
	}
	if err := r.Reload(); err != nil {
		log.Printf("Warning: template load: %v", err)
	}
	return r
}

func (r *fileTemplateRepository) Reload() error {
	entries, err := os.ReadDir(r.templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: templates directory not found: %s", r.templatesDir)
			r.mu.Lock()
			r.profiles = make(map[string]*entity.CompanyProfile)
			r.files = make(map[string]string)
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("read templates dir %s: %w", r.templatesDir, err)
	}

	profiles := make(map[string]*entity.CompanyProfile)
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		path := filepath.Join(r.templatesDir, e.Name())
		profile, err := r.loadFile(path)
		if err != nil {
			log.Printf("Error loading template %s: %v", path, err)
			continue
		}
		profiles[profile.Name] = profile
		files[profile.Name] = path
		log.Printf("Loaded template: %s", profile.Name)
	}

	r.mu.Lock()
	r.profiles = profiles
	r.files = files
	r.mu.Unlock()
	return nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (r *fileTemplateRepository) loadFile(path string) (*entity.CompanyProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec templateRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &rec)
	} else {
		err = yaml.Unmarshal(raw, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if rec.Name == "" {
		base := filepath.Base(path)
		rec.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	rate := entity.DefaultVATRate
	if rec.VATRate != nil {
		rate = decimal.NewFromFloat(*rec.VATRate)
	}

	profile := &entity.CompanyProfile{
		Name:            rec.Name,
		Address:         rec.CompanyInfo.Address,
		PostalCode:      rec.CompanyInfo.PostalCode,
		City:            rec.CompanyInfo.City,
		Country:         rec.CompanyInfo.Country,
		TaxID:           rec.CompanyInfo.TaxID,
		Phone:           rec.CompanyInfo.Phone,
		Email:           rec.CompanyInfo.Email,
		Website:         rec.CompanyInfo.Website,
		OpeningHours:    rec.CompanyInfo.OpeningHours,
		PaymentMethods:  rec.PaymentMethods,
		DefaultFooter:   rec.DefaultFooter,
		DefaultLanguage: rec.Language,
		DefaultCurrency: rec.Currency,
		VATRate:         rate,
		LogoFile:        rec.LogoFile,
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	r.resolveLogo(profile)
	return profile, nil
}

// resolveLogo fills LogoText or LogoImage from the logos directory. An
// explicit logo_file wins; otherwise a file named after the company is
// looked up. A missing file means no logo, never an error.
func (r *fileTemplateRepository) resolveLogo(p *entity.CompanyProfile) {
	p.LogoText = nil
	p.LogoImage = ""

	candidates := []string{}
	if p.LogoFile != "" {
		candidates = append(candidates, p.LogoFile)
	} else {
		safe := SafeName(p.Name)
		candidates = append(candidates, safe+".png", safe+".txt")
	}

	for _, name := range candidates {
		path := filepath.Join(r.logosDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			raw, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Error reading logo %s: %v", path, err)
				continue
			}
			lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
			for i := range lines {
				lines[i] = strings.TrimRight(lines[i], " ")
			}
			// Drop a trailing blank from the file's final newline.
			for len(lines) > 0 && lines[len(lines)-1] == "" {
				lines = lines[:len(lines)-1]
			}
			p.LogoText = lines
			return
		case ".png", ".jpg", ".jpeg":
			p.LogoImage = path
			return
		}
	}
}

// SafeName lowercases a company name and replaces every non-alphanumeric rune
// with an underscore. Used for default logo lookup and counter keys.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (r *fileTemplateRepository) Get(name string) *entity.CompanyProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[name]
}

func (r *fileTemplateRepository) ListNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *fileTemplateRepository) UpdateLogo(name, logoFile string) error {
	return r.updateFile(name, func(data map[string]interface{}) {
		data["logo_file"] = logoFile
	})
}

func (r *fileTemplateRepository) UpdateCompanyInfo(name string, update domainRepo.CompanyInfoUpdate) error {
	return r.updateFile(name, func(data map[string]interface{}) {
		info, _ := data["company_info"].(map[string]interface{})
		if info == nil {
			info = make(map[string]interface{})
		}
		setIf := func(key string, v *string) {
			if v != nil {
				info[key] = *v
			}
		}
		setIf("address", update.Address)
		setIf("postal_code", update.PostalCode)
		setIf("city", update.City)
		setIf("country", update.Country)
		setIf("tax_id", update.TaxID)
		setIf("phone", update.Phone)
		setIf("email", update.Email)
		setIf("website", update.Website)
		if update.OpeningHours != nil {
			info["opening_hours"] = update.OpeningHours
		}
		data["company_info"] = info
	})
}

// updateFile applies a mutation to the raw record of one template file,
// writes it back in its original format and refreshes the in-memory profile.
func (r *fileTemplateRepository) updateFile(name string, mutate func(map[string]interface{})) error {
	r.mu.RLock()
	path, ok := r.files[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template file not found for %q", name)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}

	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	data := make(map[string]interface{})
	if isJSON {
		err = json.Unmarshal(raw, &data)
	} else {
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}

	mutate(data)

	var out []byte
	if isJSON {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = yaml.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("encode template %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}

	profile, err := r.loadFile(path)
	if err != nil {
		return fmt.Errorf("reload template %s: %w", path, err)
	}
	r.mu.Lock()
	r.profiles[name] = profile
	r.files[name] = path
	r.mu.Unlock()
	return nil
}
