package relay

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/e1732a364fed/relaylist/utils"
	"go.uber.org/zap"
)

// RelayList is the root of the catalog.
type RelayList struct {
	Countries []Country `json:"countries"`
}

type Country struct {
	Name   string      `json:"name"`
	Code   CountryCode `json:"code"`
	Cities []City      `json:"cities"`
}

type City struct {
	Name      string   `json:"name"`
	Code      CityCode `json:"code"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Relays    []Relay  `json:"relays"`
}

// Empty 用于第一次成功获取 relay list 之前.
func Empty() RelayList {
	return RelayList{Countries: []Country{}}
}

// Parse 是全有或全无的, 出错时返回空的 RelayList 和 *DecodeError.
func Parse(data []byte) (RelayList, error) {
	var l RelayList
	if err := json.Unmarshal(data, &l); err != nil {
		if ce := utils.CanLogDebug("relay list decode failed"); ce != nil {
			ce.Write(zap.Int("size", len(data)), zap.Error(err))
		}
		return RelayList{}, &DecodeError{Err: err}
	}

	if ce := utils.CanLogDebug("relay list decoded"); ce != nil {
		st := l.Stats()
		ce.Write(zap.Int("countries", st.Countries), zap.Int("cities", st.Cities), zap.Int("relays", st.Relays))
	}
	return l, nil
}

func Decode(r io.Reader) (RelayList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RelayList{}, utils.ErrInErr{ErrDesc: "read relay list", ErrDetail: err}
	}
	return Parse(data)
}

func (l RelayList) Marshal() ([]byte, error) {
	return json.Marshal(l)
}

// Encode 输出带缩进的 json, 便于人工查看
func (l RelayList) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (l RelayList) MarshalJSON() ([]byte, error) {
	type plain RelayList
	l.Countries = nonNil(l.Countries)
	return json.Marshal(plain(l))
}

func (l *RelayList) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}
	var v RelayList
	if v.Countries, err = listField[Country](o, "countries"); err != nil {
		return
	}
	v.Countries = nonNil(v.Countries)
	*l = v
	return
}

func (c Country) MarshalJSON() ([]byte, error) {
	type plain Country
	c.Cities = nonNil(c.Cities)
	return json.Marshal(plain(c))
}

func (c *Country) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v Country
	if v.Name, err = field[string](o, "name"); err != nil {
		return
	}
	if v.Code, err = field[CountryCode](o, "code"); err != nil {
		return
	}
	if v.Cities, err = listField[City](o, "cities"); err != nil {
		err = inField("country "+string(v.Code), err)
		return
	}
	*c = v
	return
}

func (c City) MarshalJSON() ([]byte, error) {
	type plain City
	c.Relays = nonNil(c.Relays)
	return json.Marshal(plain(c))
}

func (c *City) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v City
	if v.Name, err = field[string](o, "name"); err != nil {
		return
	}
	if v.Code, err = field[CityCode](o, "code"); err != nil {
		return
	}
	if v.Latitude, err = field[float64](o, "latitude"); err != nil {
		return
	}
	if v.Longitude, err = field[float64](o, "longitude"); err != nil {
		return
	}
	if v.Relays, err = listField[Relay](o, "relays"); err != nil {
		err = inField("city "+string(v.Code), err)
		return
	}
	*c = v
	return
}

// Clone 深拷贝, 对拷贝的任何修改都不影响 l
func (l RelayList) Clone() RelayList {
	c := RelayList{Countries: make([]Country, len(l.Countries))}
	for i, country := range l.Countries {
		c.Countries[i] = country.Clone()
	}
	return c
}

func (c Country) Clone() Country {
	cities := c.Cities
	c.Cities = nil
	if cities != nil {
		c.Cities = make([]City, len(cities))
		for i, city := range cities {
			c.Cities[i] = city.Clone()
		}
	}
	return c
}

func (c City) Clone() City {
	relays := c.Relays
	c.Relays = nil
	if relays != nil {
		c.Relays = make([]Relay, len(relays))
		for i, r := range relays {
			c.Relays[i] = r.Clone()
		}
	}
	return c
}
