package apibible

// envelope wraps every API.Bible payload: {"data": ...}.
type envelope[T any] struct {
	Data *T `json:"data"`
}

// apiBible is one entry of GET /bibles.
type apiBible struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	NameLocal         string      `json:"nameLocal"`
	Abbreviation      string      `json:"abbreviation"`
	AbbreviationLocal string      `json:"abbreviationLocal"`
	Description       string      `json:"description"`
	Language          apiLanguage `json:"language"`
}

type apiLanguage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameLocal string `json:"nameLocal"`
}

// apiBook is one entry of GET /bibles/{id}/books?include-chapters=true.
type apiBook struct {
	ID           string       `json:"id"`
	BibleID      string       `json:"bibleId"`
	Abbreviation string       `json:"abbreviation"`
	Name         string       `json:"name"`
	NameLong     string       `json:"nameLong"`
	Chapters     []apiChapter `json:"chapters"`
}

// apiChapter numbers are strings; the introduction uses "intro".
type apiChapter struct {
	ID     string `json:"id"`
	BookID string `json:"bookId"`
	Number string `json:"number"`
}

// apiVerse is GET /bibles/{id}/verses/{verseId}?content-type=text.
type apiVerse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
