package book

// ToEntity builds an unsaved Book from a create request.
func ToEntity(req CreateRequest) Book {
	return Book{
		Title:       req.Title,
		Description: req.Description,
	}
}

func ToSummary(b Book) Summary {
	return Summary{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
	}
}

// ToSummaries never returns nil so an empty store encodes as [].
func ToSummaries(books []Book) []Summary {
	out := make([]Summary, 0, len(books))
	for _, b := range books {
		out = append(out, ToSummary(b))
	}
	return out
}

func ToDetail(b Book) Detail {
	return Detail{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
	}
}

func ToCreatedBook(b Book) CreatedBook {
	return CreatedBook{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
	}
}

// ApplyUpdate returns existing with its title and description replaced.
func ApplyUpdate(req UpdateRequest, existing Book) Book {
	existing.Title = req.Title
	existing.Description = req.Description
	return existing
}
