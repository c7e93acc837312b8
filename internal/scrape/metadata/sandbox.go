// internal/scrape/metadata/sandbox.go
package metadata

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// InlineGlobals executes the document's inline scripts in a sandboxed JS VM
// and returns the values of globals they assigned, rendered as strings.
// The mocked browser environment is just enough to capture data assignments;
// most page scripts fail against it, which is expected and ignored.
func InlineGlobals(doc *goquery.Document) []string {
	if doc == nil {
		return nil
	}

	vm := goja.New()
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{})
	vm.Set("location", map[string]interface{}{})
	vm.Set("console", map[string]interface{}{
		"log":   func(call goja.FunctionCall) goja.Value { return nil },
		"error": func(call goja.FunctionCall) goja.Value { return nil },
		"warn":  func(call goja.FunctionCall) goja.Value { return nil },
	})

	executed := 0
	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		// External scripts cannot run here
		if _, exists := sel.Attr("src"); exists {
			return
		}
		if body := sel.Text(); body != "" {
			if _, err := vm.RunString(body); err == nil {
				executed++
			}
		}
	})

	var values []string
	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		if val := vm.Get(key); val != nil {
			if exported := val.Export(); exported != nil {
				values = append(values, fmt.Sprintf("%v", exported))
			}
		}
	}

	log.Debug().
		Int("scripts_executed", executed).
		Int("globals", len(values)).
		Msg("Inline script sandbox run complete")

	return values
}

func isStandardGlobal(key string) bool {
	standards := map[string]bool{
		"window": true, "self": true, "document": true, "location": true, "console": true,
		"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
		"Date": true, "Math": true, "JSON": true, "RegExp": true, "Error": true,
		"Function": true, "parseInt": true, "parseFloat": true, "isNaN": true,
		"isFinite": true, "encodeURI": true, "decodeURI": true, "encodeURIComponent": true,
		"decodeURIComponent": true, "undefined": true, "NaN": true, "Infinity": true,
	}
	return standards[key]
}
