package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

const testBaseURL = "https://qiita.example"

// fakePage is one page of the fake site. A selector is on the page when it
// has an entry in present; "body" always is.
type fakePage struct {
	html    string
	present map[string]bool
	attrs   map[string]map[string]string
	values  map[string]string
}

func (p *fakePage) has(selector string) bool {
	return selector == "body" || p.present[selector]
}

// fakeBrowser implements repository.BrowserRepository over a map of pages.
type fakeBrowser struct {
	pages       map[string]*fakePage
	current     string
	navigations []string
	waits       []string
	typed       map[string]string
	navErrs     map[string]error
	// onSubmit is called when the login submit button is clicked.
	onSubmit func(b *fakeBrowser)
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		pages:   map[string]*fakePage{},
		typed:   map[string]string{},
		navErrs: map[string]error{},
	}
}

func (b *fakeBrowser) page() (*fakePage, error) {
	p, ok := b.pages[b.current]
	if !ok {
		return nil, fmt.Errorf("%w: no page at %q", repository.ErrNavigationFailed, b.current)
	}
	return p, nil
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.navigations = append(b.navigations, url)
	if err, ok := b.navErrs[url]; ok {
		return err
	}
	b.current = url
	_, err := b.page()
	return err
}

func (b *fakeBrowser) WaitVisible(ctx context.Context, selector string) error {
	b.waits = append(b.waits, selector)
	p, err := b.page()
	if err != nil {
		return err
	}
	if !p.has(selector) {
		return fmt.Errorf("%w: %s", repository.ErrTimeout, selector)
	}
	return nil
}

func (b *fakeBrowser) WaitNotPresent(ctx context.Context, selector string) error {
	p, err := b.page()
	if err != nil {
		return err
	}
	if p.has(selector) {
		return fmt.Errorf("%w: %s still present", repository.ErrTimeout, selector)
	}
	return nil
}

func (b *fakeBrowser) SendKeys(ctx context.Context, selector, value string) error {
	p, err := b.page()
	if err != nil {
		return err
	}
	if !p.has(selector) {
		return fmt.Errorf("%w: %s", repository.ErrElementNotFound, selector)
	}
	b.typed[selector] += value
	return nil
}

func (b *fakeBrowser) Click(ctx context.Context, selector string) error {
	p, err := b.page()
	if err != nil {
		return err
	}
	if !p.has(selector) {
		return fmt.Errorf("%w: %s", repository.ErrElementNotFound, selector)
	}
	if b.onSubmit != nil {
		b.onSubmit(b)
	}
	return nil
}

func (b *fakeBrowser) Attribute(ctx context.Context, selector, name string) (string, error) {
	p, err := b.page()
	if err != nil {
		return "", err
	}
	if !p.has(selector) {
		return "", fmt.Errorf("%w: %s", repository.ErrElementNotFound, selector)
	}
	return p.attrs[selector][name], nil
}

func (b *fakeBrowser) Value(ctx context.Context, selector string) (string, error) {
	p, err := b.page()
	if err != nil {
		return "", err
	}
	if !p.has(selector) {
		return "", fmt.Errorf("%w: %s", repository.ErrElementNotFound, selector)
	}
	return p.values[selector], nil
}

func (b *fakeBrowser) HTML(ctx context.Context) (string, error) {
	p, err := b.page()
	if err != nil {
		return "", err
	}
	return p.html, nil
}

// fakePost describes one post of the fake site.
type fakePost struct {
	slug  string
	title string
	tags  string
	text  string
	// noEdit removes the edit link, as for a post the viewer may not edit.
	noEdit bool
	// noEditor keeps the editor from rendering.
	noEditor bool
}

func (p fakePost) permalink(account string) string {
	return testBaseURL + "/" + account + "/items/" + p.slug
}

func (p fakePost) record(account, no string) entity.PostRecord {
	return entity.PostRecord{
		SequenceNumber: no,
		Title:          p.title,
		URL:            p.permalink(account),
		Tags:           p.tags,
		Text:           p.text,
	}
}

// newFakeSite builds a login page, a profile page listing posts newest
// first, and a post page plus edit page per post. Login succeeds only for
// the given password.
func newFakeSite(account, password string, posts []fakePost) *fakeBrowser {
	sel := DefaultSelectors()
	b := newFakeBrowser()

	loginURL := testBaseURL + "/login"
	b.pages[loginURL] = &fakePage{present: map[string]bool{
		sel.LoginIdentity: true,
		sel.LoginPassword: true,
		sel.LoginSubmit:   true,
	}}
	b.pages[testBaseURL] = &fakePage{}
	b.onSubmit = func(b *fakeBrowser) {
		if b.typed[sel.LoginPassword] == password {
			b.current = testBaseURL
		}
	}

	var list strings.Builder
	list.WriteString("<html><body>")
	for _, p := range posts {
		fmt.Fprintf(&list, `<article class="ItemLink"><div class="ItemLink__title"><a href="/%s/items/%s">%s</a></div></article>`,
			account, p.slug, p.title)

		post := &fakePage{present: map[string]bool{}, attrs: map[string]map[string]string{}}
		if !p.noEdit {
			post.present[sel.EditLink] = true
			post.attrs[sel.EditLink] = map[string]string{"href": "/drafts/" + p.slug + "/edit"}
		}
		b.pages[p.permalink(account)] = post

		editor := &fakePage{present: map[string]bool{}, values: map[string]string{}}
		if !p.noEditor {
			editor.present[sel.EditorBody] = true
			editor.present[sel.EditorTitle] = true
			editor.present[sel.EditorTags] = true
			editor.values[sel.EditorBody] = p.text
			editor.values[sel.EditorTitle] = p.title
			editor.values[sel.EditorTags] = p.tags
		}
		b.pages[testBaseURL+"/drafts/"+p.slug+"/edit"] = editor
	}
	list.WriteString("</body></html>")

	profile := &fakePage{html: list.String(), present: map[string]bool{}}
	if len(posts) > 0 {
		profile.present[sel.PostLink] = true
	}
	b.pages[testBaseURL+"/"+account] = profile

	return b
}
