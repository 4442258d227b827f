// Package techdetect fingerprints a scraped page's technology stack against
// a static pattern catalog. The three pattern kinds are modeled as a
// closed tagged variant rather than an interface hierarchy; see
// pattern.go for the dispatch.
package techdetect

import "regexp"

// Display names of the technologies in the catalog.
const (
	TechReact     = "React"
	TechVueJS     = "Vue.js"
	TechWordPress = "WordPress"
	TechNextJS    = "Next.js"
	TechNuxtJS    = "Nuxt.js"
	TechAngular   = "Angular"
	TechSvelte    = "Svelte"
	TechTailwind  = "Tailwind CSS"
	TechBootstrap = "Bootstrap"
	TechJQuery    = "jQuery"
)

// Category tags used by the catalog.
const (
	CategoryFrontendFramework = "Frontend Framework"
	CategoryCMS               = "CMS"
	CategoryCSSFramework      = "CSS Framework"
	CategoryJSLibrary         = "JS Library"
)

// entry is one row of the static catalog: a display name, a category, and
// the set of patterns any one of which is sufficient to declare a hit.
type entry struct {
	name     string
	category string
	patterns []pattern
}

// catalog is built once at process start and never mutated afterward.
var catalog = []entry{
	{
		name:     TechReact,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			scriptContent(`react(?:-dom)?\.(?:development|production)\.min\.js`),
			htmlContent(`data-react`),
		},
	},
	{
		name:     TechVueJS,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			scriptContent(`vue(?:\.min)?\.js`),
			htmlContent(`v-bind|v-if|v-for`),
		},
	},
	{
		name:     TechWordPress,
		category: CategoryCMS,
		patterns: []pattern{
			htmlContent(`/wp-content/|/wp-includes/`),
			metaGenerator(`WordPress`),
		},
	},
	{
		name:     TechNextJS,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			htmlContent(`__NEXT_DATA__|_next/static`),
		},
	},
	{
		name:     TechNuxtJS,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			htmlContent(`__NUXT__|_nuxt/`),
		},
	},
	{
		name:     TechAngular,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			htmlContent(`ng-app|ng-controller`),
		},
	},
	{
		name:     TechSvelte,
		category: CategoryFrontendFramework,
		patterns: []pattern{
			htmlContent(`svelte`),
		},
	},
	{
		name:     TechTailwind,
		category: CategoryCSSFramework,
		patterns: []pattern{
			classAttrContent(`flex|grid|mx-auto|p-\d+|text-|bg-`),
		},
	},
	{
		name:     TechBootstrap,
		category: CategoryCSSFramework,
		patterns: []pattern{
			scriptContent(`bootstrap(?:\.min)?\.js`),
			classAttrContent(`col-md|btn-primary|container-fluid`),
		},
	},
	{
		name:     TechJQuery,
		category: CategoryJSLibrary,
		patterns: []pattern{
			scriptContent(`jquery(?:-\d+\.\d+\.\d+)?(?:\.min)?\.js`),
		},
	},
}

func scriptContent(expr string) pattern {
	return pattern{kind: kindScriptContent, re: regexp.MustCompile(expr)}
}

func htmlContent(expr string) pattern {
	return pattern{kind: kindHTMLContent, re: regexp.MustCompile(expr)}
}

func metaGenerator(expr string) pattern {
	return pattern{kind: kindMetaGenerator, re: regexp.MustCompile(expr)}
}

// classAttrContent scopes an HtmlContent pattern to a class="..." value
// instead of the whole document, so a non-class occurrence of e.g. "bg-"
// elsewhere on the page doesn't produce a false positive.
func classAttrContent(expr string) pattern {
	return pattern{kind: kindHTMLContent, re: regexp.MustCompile(`class="[^"]*(?:` + expr + `)[^"]*"`)}
}
