package view

import "strings"

// LandingPath is the home link; it is matched differently from the others.
const LandingPath = "/landing"

type NavLink struct {
	Label  string
	Path   string
	Active bool
}

var navLinks = []NavLink{
	{Label: "Home", Path: LandingPath},
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Borrower", Path: "/borrower"},
	{Label: "Admin", Path: "/admin"},
	{Label: "Loans", Path: "/loans"},
}

// ActiveLink reports whether linkPath is highlighted on currentPath. A link
// is active when the path contains it; Home is active on the site root, the
// index and the landing page.
func ActiveLink(currentPath, linkPath string) bool {
	if linkPath == LandingPath {
		return currentPath == "" ||
			strings.HasSuffix(currentPath, "/") ||
			strings.HasSuffix(currentPath, "/index") ||
			strings.HasSuffix(currentPath, LandingPath)
	}
	return strings.Contains(currentPath, linkPath)
}

// Nav returns the header links with the active flag set for currentPath.
func Nav(currentPath string) []NavLink {
	out := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		l.Active = ActiveLink(currentPath, l.Path)
		out[i] = l
	}
	return out
}

type FooterColumn struct {
	Title string
	Links []NavLink
}

var footerColumns = []FooterColumn{
	{Title: "Quick Links", Links: []NavLink{
		{Label: "Home", Path: LandingPath},
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Borrower", Path: "/borrower"},
		{Label: "Admin", Path: "/admin"},
	}},
	{Title: "Resources", Links: []NavLink{
		{Label: "Documentation", Path: "#"},
		{Label: "API Reference", Path: "#"},
		{Label: "Smart Contracts", Path: "#"},
		{Label: "Whitepaper", Path: "#"},
	}},
}

func Footer() []FooterColumn { return footerColumns }
