package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for item documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on names with English stemming
//  2. Exact keyword matching for user scoping and category/tag filters
//  3. Numeric range queries for price
//  4. Term vectors on key fields for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target, boosted at query time
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Brand - searchable with simple analyzer (no stemming; brand names
	// like "Levi's" stem badly)
	brandFieldMapping := bleve.NewTextFieldMapping()
	brandFieldMapping.Analyzer = simple.Name
	brandFieldMapping.Store = true
	brandFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("brand", brandFieldMapping)

	// Type - free-form subtype ("t-shirt", "chinos")
	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = en.AnalyzerName
	typeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	// Material - searchable
	materialFieldMapping := bleve.NewTextFieldMapping()
	materialFieldMapping.Analyzer = en.AnalyzerName
	materialFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("material", materialFieldMapping)

	// Notes - searchable but not stored
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = en.AnalyzerName
	notesFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// User scope - every query filters on this
	userFieldMapping := bleve.NewTextFieldMapping()
	userFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("user_id", userFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Category - primary facet
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	categoryFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// Color - exact shade as entered
	colorFieldMapping := bleve.NewTextFieldMapping()
	colorFieldMapping.Analyzer = keyword.Name
	colorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("color", colorFieldMapping)

	// Color family - canonical palette for faceting
	colorFamilyFieldMapping := bleve.NewTextFieldMapping()
	colorFamilyFieldMapping.Analyzer = keyword.Name
	colorFamilyFieldMapping.Store = true
	colorFamilyFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("color_family", colorFamilyFieldMapping)

	// Tags - keyword analyzer keeps compound tags intact (e.g., "date night")
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// Seasons - exact matching
	seasonsFieldMapping := bleve.NewTextFieldMapping()
	seasonsFieldMapping.Analyzer = keyword.Name
	seasonsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("seasons", seasonsFieldMapping)

	// Occasion - exact matching
	occasionFieldMapping := bleve.NewTextFieldMapping()
	occasionFieldMapping.Analyzer = keyword.Name
	occasionFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("occasion", occasionFieldMapping)

	// Archived flag
	archivedFieldMapping := bleve.NewBooleanFieldMapping()
	archivedFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("is_archived", archivedFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	priceFieldMapping := bleve.NewNumericFieldMapping()
	priceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("price", priceFieldMapping)

	wearCountFieldMapping := bleve.NewNumericFieldMapping()
	wearCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("wear_count", wearCountFieldMapping)

	// Timestamps - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	// Register the document mapping
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
