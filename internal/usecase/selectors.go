package usecase

// Selectors are the CSS selectors used to find elements on the platform's pages.
type Selectors struct {
	LoginIdentity string
	LoginPassword string
	LoginSubmit   string
	PostLink      string
	EditLink      string
	EditorBody    string
	EditorTitle   string
	EditorTags    string
}

// DefaultSelectors matches the current Qiita markup.
func DefaultSelectors() Selectors {
	return Selectors{
		LoginIdentity: "#identity",
		LoginPassword: "#password",
		LoginSubmit:   `[name="commit"]`,
		PostLink:      "article.ItemLink .ItemLink__title a",
		EditLink:      ".it-Header_edit a",
		EditorBody:    "textarea.editorMarkdown_textarea",
		EditorTitle:   "div.editorTitle input",
		EditorTags:    "div.editorTag input",
	}
}
