package listing

import "pet-adoption-catalog/internal/domain/pets"

const (
	// DefaultPageSize es el tamaño de página del listado de gestión.
	DefaultPageSize = 8
	// DefaultBatch es el paso de "cargar más" del inicio.
	DefaultBatch = 6
)

type Page struct {
	Items  []pets.Pet
	Number int // 1-based, siempre dentro de [1, Total] (1 si no hay items)
	Total  int // ⌈Count/Size⌉
	Size   int
	Count  int // items filtrados
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Total }

// TotalPages = ⌈n/size⌉.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage lleva page a [1, total]; con total 0 devuelve 1.
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate corta items en la página pedida. Páginas fuera de rango se
// ajustan, nunca fallan.
func Paginate(items []pets.Pet, size, page int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start > end {
		start = end
	}

	return Page{
		Items:  items[start:end:end],
		Number: page,
		Total:  total,
		Size:   size,
		Count:  len(items),
	}
}

// Window devuelve los primeros visible items (vista de inicio con
// "cargar más") y si quedan más por mostrar.
func Window(items []pets.Pet, visible int) ([]pets.Pet, bool) {
	if visible <= 0 {
		visible = DefaultBatch
	}
	if visible >= len(items) {
		return items, false
	}
	return items[:visible:visible], true
}
