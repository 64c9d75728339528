package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var (
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	ErrOutOfRange  = errors.New("date out of range")
)

// Rango representable: 0001-01-01 (ordinal 1) a 9999-12-31.
const (
	minOrdinal = 1
	maxOrdinal = 3652059
	// ordinal de 1970-01-01
	unixOrdinal = 719163
)

// Date es una fecha de calendario sin hora ni zona horaria.
// Internamente es un ordinal de días (0001-01-01 = 1); el valor cero significa "sin fecha".
// Toda la aritmética de estadías y de la grilla trabaja sobre días enteros.
type Date struct {
	n int32
}

// FromYMD construye una fecha. Valores fuera de rango se normalizan igual que time.Date
// y el resultado satura en 0001-01-01 / 9999-12-31.
func FromYMD(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	n := t.Unix()/secondsPerDay + unixOrdinal
	switch {
	case n < minOrdinal:
		n = minOrdinal
	case n > maxOrdinal:
		n = maxOrdinal
	}
	return Date{n: int32(n)}
}

// FromTime toma el día calendario de t en su propia zona.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return FromYMD(y, m, d)
}

// Today devuelve la fecha local de now.
func Today(now time.Time) Date {
	return FromTime(now.Local())
}

func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	if t.Year() < 1 {
		return Date{}, ErrOutOfRange
	}
	return FromTime(t), nil
}

// MustParse es para tests y datos fijos.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.n == 0 }

// Time devuelve la medianoche UTC del día.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Unix((int64(d.n)-unixOrdinal)*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(Layout)
}

// AddDays desplaza la fecha. Una fecha vacía sigue vacía.
// Fuera de rango satura en el primer o último día representable; para
// desplazamientos que vienen del usuario usar Shift.
func (d Date) AddDays(days int) Date {
	if d.IsZero() {
		return d
	}
	out, err := d.Shift(days)
	if err == nil {
		return out
	}
	if days < 0 {
		return Date{n: minOrdinal}
	}
	return Date{n: maxOrdinal}
}

// Shift desplaza la fecha y devuelve ErrOutOfRange si el resultado sale del
// rango representable.
func (d Date) Shift(days int) (Date, error) {
	if d.IsZero() {
		return d, nil
	}
	n := int64(d.n) + int64(days)
	if days > maxOrdinal || days < -maxOrdinal || n < minOrdinal || n > maxOrdinal {
		return d, ErrOutOfRange
	}
	return Date{n: int32(n)}, nil
}

// Sub devuelve la cantidad de días de o a d (d - o).
func (d Date) Sub(o Date) int {
	return int(d.n - o.n)
}

func (d Date) Before(o Date) bool { return d.n < o.n }
func (d Date) After(o Date) bool  { return d.n > o.n }
func (d Date) Equal(o Date) bool  { return d.n == o.n }

func (d Date) Compare(o Date) int {
	switch {
	case d.n < o.n:
		return -1
	case d.n > o.n:
		return 1
	default:
		return 0
	}
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// StartOfWeek devuelve el weekStart más reciente en o antes de d.
func (d Date) StartOfWeek(weekStart time.Weekday) Date {
	if d.IsZero() {
		return d
	}
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// DaysBetween cuenta días calendario de a a b (b - a).
func DaysBetween(a, b Date) int {
	return b.Sub(a)
}

func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// JSON: "YYYY-MM-DD" o null para fecha vacía.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value guarda la fecha en columnas DATE.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}
