package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
)

// RenderIdentity writes the provider-asserted identity. Shown unconditionally
// once authenticated, before any backend fetch resolves.
func RenderIdentity(w io.Writer, id domain.Identity) {
	fmt.Fprintln(w, "User Profile")
	fmt.Fprintln(w, "------------")
	fmt.Fprintf(w, "Name:    %s\n", id.Name)
	fmt.Fprintf(w, "Email:   %s\n", id.Email)
	if id.Picture != "" {
		fmt.Fprintf(w, "Avatar:  %s\n", id.Picture)
	}
	fmt.Fprintln(w)
}

// RenderResult writes one fetched section under the given title, or an
// explicit error line when the fetch failed.
func RenderResult(w io.Writer, title string, result FetchResult) {
	fmt.Fprintf(w, "%s:\n", title)
	if !result.OK() {
		fmt.Fprintf(w, "  unavailable (%v)\n\n", result.Err)
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result.Body, "  ", "  "); err != nil {
		fmt.Fprintf(w, "  %s\n\n", result.Body)
		return
	}
	fmt.Fprintf(w, "  %s\n\n", pretty.String())
}
