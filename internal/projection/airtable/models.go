package airtable

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"creative_catalog/internal/domain"
)

// Airtable REST shapes.

type record struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

type recordPage struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type writeRequest struct {
	Records []record `json:"records"`
}

type apiError struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// fullFields is the primary many-typed-column projection of an entry.
func fullFields(e domain.CatalogEntry, runTS time.Time) map[string]any {
	return map[string]any{
		"ad_id":                e.AdID,
		"ad_name":              e.AdName,
		"brand":                e.Brand,
		"creative_type":        e.CreativeType,
		"campaign_season":      e.CampaignSeason,
		"hook_category":        e.HookCategory,
		"quality_tier":         e.QualityTier,
		"status":               e.Status,
		"public_download_url":  e.PublicURL,
		"public_view_url":      e.ViewURL,
		"facebook_preview_url": e.PreviewURL,
		"bytes_len":            e.BytesLen,
		"slug":                 e.Slug,
		"run_timestamp":        runTS.UTC().Format(time.RFC3339),
	}
}

// minimalFields is the degraded projection used after schema drift:
// key columns plus one notes blob carrying the rest as stable
// key=value lines.
func minimalFields(e domain.CatalogEntry, runTS time.Time) map[string]any {
	full := fullFields(e, runTS)
	delete(full, "ad_id")
	delete(full, "ad_name")

	keys := make([]string, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%v", k, full[k]))
	}

	return map[string]any{
		"ad_id":   e.AdID,
		"ad_name": e.AdName,
		"notes":   strings.Join(lines, "\n"),
	}
}

// orphanFields clears the URL-carrying columns of a row whose ad no
// longer exists upstream. The row itself is kept.
func orphanFields(runTS time.Time) map[string]any {
	return map[string]any{
		"public_download_url":  "",
		"public_view_url":      "",
		"facebook_preview_url": "",
		"notes":                "orphaned at " + runTS.UTC().Format(time.RFC3339),
	}
}

// orphanFieldsMinimal is the degraded variant of the orphan stamp.
func orphanFieldsMinimal(runTS time.Time) map[string]any {
	return map[string]any{
		"notes": "orphaned at " + runTS.UTC().Format(time.RFC3339),
	}
}
