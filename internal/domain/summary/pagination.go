package summary

const DefaultPageSize = 10

// PageSizes son los tamaños que ofrece el control de paginación.
var PageSizes = []int{10, 20, 30, 40, 50}

// Pager guarda página actual y tamaño de página; son independientes salvo que
// cambiar el tamaño vuelve a la página 1.
type Pager struct {
	page int
	size int
}

func NewPager(size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{page: 1, size: size}
}

func (p Pager) Page() int     { return p.page }
func (p Pager) PageSize() int { return p.size }

func (p *Pager) SetPage(page int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	p.page = page
	return nil
}

func (p *Pager) SetPageSize(size int) error {
	if size < 1 {
		return ErrInvalidPage
	}
	p.size = size
	p.page = 1
	return nil
}

// ShowControl: el control solo se muestra si hay más filas que el tamaño de página.
func (p Pager) ShowControl(total int) bool {
	return total > p.size
}

func (p Pager) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// Paginate devuelve items[(page-1)*size : page*size] acotado a los límites.
// Una página fuera de rango devuelve un slice vacío, nunca error.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	if page-1 > len(items)/size {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}
