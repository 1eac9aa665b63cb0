package jsonapi

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseFieldsets(t *testing.T) {
	query := url.Values{
		"fields[product]": {"product.code,product.label"},
		"fields[price]":   {"price.value"},
		"include":         {"media"},
	}

	fs := ParseFieldsets(query)

	if len(fs) != 2 {
		t.Fatalf("got %d fieldsets, want 2", len(fs))
	}
	if !fs["product"]["product.code"] || !fs["product"]["product.label"] {
		t.Errorf("product fieldset incomplete: %v", fs["product"])
	}
	if !fs["price"]["price.value"] {
		t.Errorf("price fieldset incomplete: %v", fs["price"])
	}
}

func TestFieldsetFilter(t *testing.T) {
	fs := Fieldsets{"product": {"product.code": true}}
	attrs := map[string]any{
		"product.code":  "abc",
		"product.label": "Test product",
	}

	got := fs.Filter("product", attrs)
	want := map[string]any{"product.code": "abc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}

	// Filtering twice yields the same result as filtering once.
	if again := fs.Filter("product", got); !reflect.DeepEqual(again, want) {
		t.Errorf("second Filter() = %v, want %v", again, want)
	}

	// Types without a fieldset pass all attributes through.
	if got := fs.Filter("price", attrs); !reflect.DeepEqual(got, attrs) {
		t.Errorf("unfiltered type changed: %v", got)
	}
}
