package crawler

// FieldKey names one logical field the extractors pull from the page.
type FieldKey string

const (
	FieldName      FieldKey = "name"
	FieldCategory  FieldKey = "category"
	FieldAddress   FieldKey = "address"
	FieldPhone     FieldKey = "phone"
	FieldImage     FieldKey = "image"
	FieldMenuTab   FieldKey = "menu_tab"
	FieldMenuItem  FieldKey = "menu_item"
	FieldMenuName  FieldKey = "menu_name"
	FieldMenuPrice FieldKey = "menu_price"
	FieldMenuDesc  FieldKey = "menu_desc"
)

// catalog maps each field to its candidate selectors, newest markup first.
// Naver rolls out obfuscated class names unevenly, so older candidates stay
// as fallbacks; order is fixed at build time and resolution always takes the
// first candidate that matches anything.
var catalog = map[FieldKey][]string{
	FieldName: {
		"span.GHAhO",
		"span.Fc1rA",
		".place_section_content h2",
		"div.zD5Nm h2",
		".O8qbU",
	},
	FieldCategory: {
		"span.lnJFt",
		"span.DJJvD",
		".LDgIH + span",
	},
	FieldAddress: {
		"span.LDgIH",
		".O8qbU.tQY7D span",
		"div.vV_z_ span",
	},
	FieldPhone: {
		"span.xlx7Q",
		"span.dry01",
		"a[href^='tel:']",
	},
	FieldImage: {
		".K0PDV img",
		".place_thumb img",
		".fNygA img",
		"div.K0PDV._div img",
	},
	FieldMenuTab: {
		"a.tpj9w",
		"a[href*='menu']",
		"span.veBoZ",
	},
	FieldMenuItem: {
		"li.E2jtL",
		"div.place_section_content li",
		".tQY7D li",
	},
	FieldMenuName: {
		".lPzHi",
		".tit_item",
		"span.A_cdD",
	},
	FieldMenuPrice: {
		".GXS1X",
		".price",
		"div.CLSES em",
	},
	FieldMenuDesc: {
		".kPogF",
		".detail_txt",
	},
}

// frameCandidates are the known content-frame ids, tried in order.
var frameCandidates = []string{
	"iframe#entryIframe",
	"iframe#searchIframe",
}

// menuTabLabel is the visible label of the menu tab on the place page.
const menuTabLabel = "메뉴"

// genericTextChildren matches the first text-bearing child when no menu-name
// candidate resolves.
const genericTextChildren = "span, div, p"

// interactiveElements is the exhaustive-scan scope for the menu tab fallback.
const interactiveElements = "a, button, span"
