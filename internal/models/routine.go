package models

import "time"

// Routine — тренировочная программа, назначенная одному клиенту.
// CreatedBy хранит снимок имени создавшего администратора,
// а не живую ссылку на его учётную запись.
type Routine struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	CreatedBy   string
	UserID      int64 // Владелец программы
}

// Exercise — одно упражнение внутри программы. Series может быть nil:
// отсутствие значения и ноль — разные вещи.
type Exercise struct {
	ID        int64
	Name      string
	Series    *int   // Количество подходов
	Reps      string // Повторения, свободный текст ("8-12")
	Weight    string // Вес, свободный текст
	Day       string // День недели или метка
	Notes     string
	RoutineID int64
}

// DummyRoutine принимает данные формы создания или редактирования программы.
// Exercises — сырой JSON-массив упражнений одной строкой, как его
// собирает клиентская часть; разбирается отдельно и лояльно.
type DummyRoutine struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Exercises   string `json:"exercises"`
}

// DummyExercise — одно упражнение из пакетного JSON-поля формы.
// Числовые поля приходят строками и приводятся вручную.
type DummyExercise struct {
	Name   string `json:"name"`
	Series string `json:"series"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
	Day    string `json:"day"`
	Notes  string `json:"notes"`
}
