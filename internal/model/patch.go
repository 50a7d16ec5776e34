package model

// ProductPatch описывает частичное обновление товара. Поля со значением nil
// не изменяются. Набор имён полей фиксирован на этапе компиляции: значения
// передаются только через параметры запроса, имена колонок в запрос
// из входных данных не попадают.
type ProductPatch struct {
	Name        *string
	Price       *int64
	Description *string
	Image       *string
	CategoryID  *int64
}

// IsEmpty сообщает, что ни одно поле не задано. Такой патч — это no-op,
// а не «не найдено»: вызывающий должен ответить ошибкой класса 400.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil &&
		p.Image == nil && p.CategoryID == nil
}

// CategoryPatch описывает частичное обновление категории.
type CategoryPatch struct {
	Name *string
}

// IsEmpty сообщает, что ни одно поле не задано.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil
}
