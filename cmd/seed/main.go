package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vitrine/vitrine-backend/config"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected column layout of the import workbook, first row is the header:
//
//	0 name | 1 description | 2 segment | 3 phone | 4 whatsapp
//	5 street | 6 number | 7 city | 8 state | 9 postal_code | 10 locality
const columnCount = 11

// Imported businesses share one placeholder logo until the owner uploads a
// real one.
const (
	placeholderLogoName = "placeholder.png"
	placeholderLogoPath = "logos/placeholder.png"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	segmentRepo := repository.NewSegmentRepository(db.GetDB())
	fileRepo := repository.NewFileRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	segments, err := loadSegmentIndex(segmentRepo)
	if err != nil {
		log.Fatal("Failed to load segments:", err)
	}

	businesses, skipped := buildBusinesses(rows, segmentRepo, segments)
	fmt.Printf("Total businesses to import: %d (skipped %d rows)\n", len(businesses), skipped)

	if len(businesses) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	logo, err := fileRepo.Resolve(nil, placeholderLogoName, placeholderLogoPath)
	if err != nil {
		log.Fatal("Failed to resolve placeholder logo:", err)
	}
	for i := range businesses {
		businesses[i].LogoID = logo.ID
	}

	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	err = db.GetDB().
		Omit("Logo", "Image", "Segment", "Categories", "Products").
		CreateInBatches(businesses, batchSize).Error
	if err != nil {
		log.Fatal("Failed to bulk create businesses:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total businesses imported: %d\n", len(businesses))
}

func readRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}
	return rows, nil
}

// loadSegmentIndex maps lower-cased segment descriptions to their rows so the
// importer can reuse existing taxonomy entries.
func loadSegmentIndex(segmentRepo repository.SegmentRepository) (map[string]uint, error) {
	existing, err := segmentRepo.FindAll()
	if err != nil {
		return nil, err
	}

	index := make(map[string]uint, len(existing))
	for _, s := range existing {
		index[strings.ToLower(s.Description)] = s.ID
	}
	return index, nil
}

func buildBusinesses(rows [][]string, segmentRepo repository.SegmentRepository, segments map[string]uint) ([]model.Business, int) {
	var businesses []model.Business
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < columnCount {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		segmentDesc := strings.TrimSpace(row[2])
		phone := strings.TrimSpace(row[3])
		whatsapp := strings.TrimSpace(row[4])
		street := strings.TrimSpace(row[5])
		number := strings.TrimSpace(row[6])
		city := strings.TrimSpace(row[7])
		state := strings.TrimSpace(row[8])
		postalCode := strings.TrimSpace(row[9])
		locality := strings.TrimSpace(row[10])

		if name == "" || segmentDesc == "" {
			skipped++
			continue
		}
		if street == "" || city == "" || state == "" || postalCode == "" || locality == "" {
			skipped++
			continue
		}

		key := fmt.Sprintf("%s|%s|%s", strings.ToLower(name), strings.ToLower(city), strings.ToLower(street))
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		segmentID, ok := segments[strings.ToLower(segmentDesc)]
		if !ok {
			segment := &model.Segment{Description: segmentDesc}
			if err := segmentRepo.Create(segment); err != nil {
				log.Fatal("Failed to create segment:", err)
			}
			segmentID = segment.ID
			segments[strings.ToLower(segmentDesc)] = segmentID
		}

		businesses = append(businesses, model.Business{
			Name:        name,
			Description: description,
			Phone:       phone,
			Whatsapp:    whatsapp,
			SegmentID:   segmentID,
			Valid:       true,
			Addresses: []model.Address{{
				Street:     street,
				Number:     number,
				City:       city,
				State:      state,
				PostalCode: postalCode,
				Locality:   locality,
			}},
		})

		if len(businesses)%100 == 0 {
			fmt.Printf("Processed %d businesses...\n", len(businesses))
		}
	}

	return businesses, skipped
}
