package crawler

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/onboardify/storecrawl/models"
)

// extractStoreInfo pulls the scalar store fields from the current scope.
// Every field is independently optional: a miss leaves the field empty and
// never blocks the remaining fields.
func extractStoreInfo(root QueryRoot) *models.StoreRecord {
	rec := &models.StoreRecord{Menus: []models.MenuRecord{}}

	rec.Name = textOrEmpty(resolveOne(root, catalog[FieldName]))
	rec.Category = textOrEmpty(resolveOne(root, catalog[FieldCategory]))
	rec.Address = textOrEmpty(resolveOne(root, catalog[FieldAddress]))

	// Phone: prefer visible text, fall back to the tel: link target.
	if el := resolveOne(root, catalog[FieldPhone]); el != nil {
		phone := textOrEmpty(el)
		if phone == "" {
			phone = strings.TrimPrefix(attrOrEmpty(el, "href"), "tel:")
		}
		rec.Phone = phone
	}

	if el := resolveOne(root, catalog[FieldImage]); el != nil {
		rec.ImageURL = attrOrEmpty(el, "src")
	}

	return rec
}

// extractMenus resolves the menu item list, caps it at limit, and extracts
// each item independently. A fault in one item drops that item only; later
// items still get extracted.
func extractMenus(root QueryRoot, limit int) []models.MenuRecord {
	items := resolveMany(root, catalog[FieldMenuItem])
	if len(items) > limit {
		items = items[:limit]
	}

	menus := make([]models.MenuRecord, 0, len(items))
	for i, item := range items {
		menu, ok := extractMenuItem(item)
		if !ok {
			slog.Debug("menu item skipped", "index", i)
			continue
		}
		menus = append(menus, menu)
	}
	return menus
}

// extractMenuItem extracts one menu item, scoped strictly to the item's own
// subtree so neighbouring items can never bleed in. Returns ok=false when
// no name could be resolved.
func extractMenuItem(item Element) (models.MenuRecord, bool) {
	var menu models.MenuRecord

	menu.Name = textOrEmpty(resolveOne(item, catalog[FieldMenuName]))
	if menu.Name == "" {
		// Best-effort fallback: first text-bearing child.
		if els, err := item.Query(genericTextChildren); err == nil && len(els) > 0 {
			menu.Name = textOrEmpty(els[0])
		}
	}
	if menu.Name == "" {
		return menu, false
	}

	if el := resolveOne(item, catalog[FieldMenuPrice]); el != nil {
		menu.Price = parsePrice(textOrEmpty(el))
	}

	menu.Description = textOrEmpty(resolveOne(item, catalog[FieldMenuDesc]))

	// Any item-level image counts, except inline data: URIs, which are
	// placeholder icons rather than real photos.
	if els, err := item.Query("img"); err == nil && len(els) > 0 {
		if src := attrOrEmpty(els[0], "src"); src != "" && !strings.HasPrefix(src, "data:") {
			menu.ImageURL = src
		}
	}

	return menu, true
}

// parsePrice strips every non-digit rune and parses the remainder.
// "12,000원" → 12000. Text without digits ("가격문의") parses to 0; zero
// prices are filtered at onboarding, not here, so a free-text price never
// blocks extraction of an otherwise valid item.
func parsePrice(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

func textOrEmpty(el Element) string {
	if el == nil {
		return ""
	}
	txt, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(txt)
}

func attrOrEmpty(el Element, name string) string {
	if el == nil {
		return ""
	}
	val, err := el.Attr(name)
	if err != nil {
		return ""
	}
	return val
}
