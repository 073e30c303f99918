// Package loosejson turns informally typed key:value text into JSON.
//
// Input looks like `name:widget, qty:3` or `{name:widget,qty:3}`. Every value
// is emitted as a JSON string; no number, boolean or null inference is done.
// Values cannot contain commas, and only the first colon of a segment
// separates key from value.
package loosejson
