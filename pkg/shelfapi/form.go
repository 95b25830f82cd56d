/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package shelfapi

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const (
	defaultUsernameField = "us"
	defaultPasswordField = "pw"
	defaultFormAction    = "/api/login"
)

// loginForm is the parsed submission contract of a device login page: where
// to POST and which field names carry the credentials. Hidden fields (CSRF
// tokens and the like) are passed through verbatim.
type loginForm struct {
	action        string
	usernameField string
	passwordField string
	hidden        url.Values
}

// values builds the form body for the given credentials.
func (f *loginForm) values(username, password string) url.Values {
	data := url.Values{}
	data.Set(f.usernameField, username)
	data.Set(f.passwordField, password)

	for name, vals := range f.hidden {
		for _, v := range vals {
			data.Add(name, v)
		}
	}

	return data
}

// parseLoginForm scans an HTML document for the first form and derives the
// submission URL and credential field names. Field roles are matched by
// input type, first match wins; literal defaults apply when no typed input
// is present. Returns nil when the document has no form.
func parseLoginForm(body []byte, base *url.URL) *loginForm {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	formNode := findFirst(doc, "form")
	if formNode == nil {
		return nil
	}

	form := &loginForm{
		action:        defaultFormAction,
		usernameField: defaultUsernameField,
		passwordField: defaultPasswordField,
		hidden:        url.Values{},
	}

	if action := attr(formNode, "action"); action != "" {
		form.action = action
	}

	form.action = resolveAction(form.action, base)

	userFound, passFound := false, false

	walkInputs(formNode, func(n *html.Node) {
		name := attr(n, "name")
		if name == "" {
			return
		}

		switch strings.ToLower(attr(n, "type")) {
		case "text":
			if !userFound {
				form.usernameField = name
				userFound = true
			}
		case "password":
			if !passFound {
				form.passwordField = name
				passFound = true
			}
		case "hidden":
			form.hidden.Add(name, attr(n, "value"))
		}
	})

	return form
}

// resolveAction turns a form action into an absolute URL against the
// endpoint base.
func resolveAction(action string, base *url.URL) string {
	if strings.HasPrefix(action, "http://") || strings.HasPrefix(action, "https://") {
		return action
	}

	ref, err := url.Parse(action)
	if err != nil {
		return base.Scheme + "://" + base.Host + "/" + strings.TrimPrefix(action, "/")
	}

	return base.ResolveReference(ref).String()
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}

	return nil
}

// walkInputs visits every input element under n in document order.
func walkInputs(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == "input" {
		visit(n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkInputs(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}
