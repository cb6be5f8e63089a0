package region

// Kind distinguishes how a region's city is picked during classification
type Kind int

const (
	// Metropolitan regions list their own districts
	Metropolitan Kind = iota
	// Province regions pick from the nationwide city/county gazetteer
	Province
	// SpecialCity regions have no sub-division
	SpecialCity
)

// Region is one top-level Korean administrative unit (시/도)
type Region struct {
	Name    string   // canonical name, used as state
	Aliases []string // accepted short forms, old names and romanizations
	Kind    Kind
	// Districts holds 구/군 for metropolitan regions and 시/군 for provinces
	Districts []string
}

// DomesticCountry is the country assigned to every Korean address
const DomesticCountry = "대한민국"

var (
	seoul = Region{
		Name:    "서울특별시",
		Aliases: []string{"서울", "seoul"},
		Kind:    Metropolitan,
		Districts: []string{
			"강남구", "서초구", "송파구", "강동구", "동작구", "관악구", "영등포구", "양천구",
			"구로구", "금천구", "강서구", "마포구", "서대문구", "은평구", "노원구", "도봉구",
			"강북구", "성북구", "중랑구", "동대문구", "광진구", "성동구", "용산구", "중구", "종로구",
		},
	}
	busan = Region{
		Name:    "부산광역시",
		Aliases: []string{"부산", "busan"},
		Kind:    Metropolitan,
		Districts: []string{
			"중구", "서구", "동구", "영도구", "부산진구", "동래구", "남구", "북구",
			"해운대구", "사하구", "금정구", "강서구", "연제구", "수영구", "사상구", "기장군",
		},
	}
	daegu = Region{
		Name:      "대구광역시",
		Aliases:   []string{"대구", "daegu"},
		Kind:      Metropolitan,
		Districts: []string{"중구", "동구", "서구", "남구", "북구", "수성구", "달서구", "달성군"},
	}
	incheon = Region{
		Name:    "인천광역시",
		Aliases: []string{"인천", "incheon"},
		Kind:    Metropolitan,
		Districts: []string{
			"중구", "동구", "미추홀구", "연수구", "남동구", "부평구", "계양구", "서구", "강화군", "옹진군",
		},
	}
	gwangju = Region{
		Name:      "광주광역시",
		Aliases:   []string{"광주", "gwangju"},
		Kind:      Metropolitan,
		Districts: []string{"동구", "서구", "남구", "북구", "광산구"},
	}
	daejeon = Region{
		Name:      "대전광역시",
		Aliases:   []string{"대전", "daejeon"},
		Kind:      Metropolitan,
		Districts: []string{"동구", "중구", "서구", "유성구", "대덕구"},
	}
	ulsan = Region{
		Name:      "울산광역시",
		Aliases:   []string{"울산", "ulsan"},
		Kind:      Metropolitan,
		Districts: []string{"중구", "남구", "동구", "북구", "울주군"},
	}
	sejong = Region{
		Name:    "세종특별자치시",
		Aliases: []string{"세종", "sejong"},
		Kind:    SpecialCity,
	}
	gyeonggi = Region{
		Name:    "경기도",
		Aliases: []string{"경기", "gyeonggi"},
		Kind:    Province,
		Districts: []string{
			"수원시", "성남시", "고양시", "용인시", "부천시", "안산시", "안양시", "남양주시",
			"화성시", "평택시", "의정부시", "시흥시", "파주시", "김포시", "광명시", "광주시",
			"군포시", "오산시", "이천시", "양주시", "안성시", "구리시", "포천시", "의왕시",
			"하남시", "여주시", "동두천시", "과천시", "가평군", "양평군", "연천군",
		},
	}
	gangwon = Region{
		Name:    "강원특별자치도",
		Aliases: []string{"강원", "강원도", "gangwon"},
		Kind:    Province,
		Districts: []string{
			"춘천시", "원주시", "강릉시", "동해시", "태백시", "속초시", "삼척시",
			"홍천군", "횡성군", "영월군", "평창군", "정선군", "철원군", "화천군", "양구군",
			"인제군", "고성군", "양양군",
		},
	}
	chungbuk = Region{
		Name:    "충청북도",
		Aliases: []string{"충북", "충청북", "chungbuk", "chungcheongbuk"},
		Kind:    Province,
		Districts: []string{
			"청주시", "충주시", "제천시", "보은군", "옥천군", "영동군", "증평군", "진천군",
			"괴산군", "음성군", "단양군",
		},
	}
	chungnam = Region{
		Name:    "충청남도",
		Aliases: []string{"충남", "충청남", "chungnam", "chungcheongnam"},
		Kind:    Province,
		Districts: []string{
			"천안시", "공주시", "보령시", "아산시", "서산시", "논산시", "계룡시", "당진시",
			"금산군", "부여군", "서천군", "청양군", "홍성군", "예산군", "태안군",
		},
	}
	jeonbuk = Region{
		Name:    "전북특별자치도",
		Aliases: []string{"전북", "전라북", "전라북도", "jeonbuk", "jeollabuk"},
		Kind:    Province,
		Districts: []string{
			"전주시", "군산시", "익산시", "정읍시", "남원시", "김제시",
			"완주군", "진안군", "무주군", "장수군", "임실군", "순창군", "고창군", "부안군",
		},
	}
	jeonnam = Region{
		Name:    "전라남도",
		Aliases: []string{"전남", "전라남", "jeonnam", "jeollanam"},
		Kind:    Province,
		Districts: []string{
			"목포시", "여수시", "순천시", "나주시", "광양시",
			"담양군", "곡성군", "구례군", "고흥군", "보성군", "화순군", "장흥군", "강진군",
			"해남군", "영암군", "무안군", "함평군", "영광군", "장성군", "완도군", "진도군", "신안군",
		},
	}
	gyeongbuk = Region{
		Name:    "경상북도",
		Aliases: []string{"경북", "경상북", "gyeongbuk", "gyeongsangbuk"},
		Kind:    Province,
		Districts: []string{
			"포항시", "경주시", "김천시", "안동시", "구미시", "영주시", "영천시", "상주시",
			"문경시", "경산시", "군위군", "의성군", "청송군", "영양군", "영덕군", "청도군",
			"고령군", "성주군", "칠곡군", "예천군", "봉화군", "울진군", "울릉군",
		},
	}
	gyeongnam = Region{
		Name:    "경상남도",
		Aliases: []string{"경남", "경상남", "gyeongnam", "gyeongsangnam"},
		Kind:    Province,
		Districts: []string{
			"창원시", "진주시", "통영시", "사천시", "김해시", "밀양시", "거제시", "양산시",
			"의령군", "함안군", "창녕군", "고성군", "남해군", "하동군", "산청군", "함양군",
			"거창군", "합천군",
		},
	}
	jeju = Region{
		Name:      "제주특별자치도",
		Aliases:   []string{"제주", "jeju"},
		Kind:      Metropolitan,
		Districts: []string{"제주시", "서귀포시"},
	}
)

// regions is the display order used by Regions and CountByRegion.
var regions = []Region{
	seoul, busan, daegu, incheon, gwangju, daejeon, ulsan, sejong,
	gyeonggi, gangwon, chungbuk, chungnam, jeonbuk, jeonnam, gyeongbuk, gyeongnam, jeju,
}

// cascade is the classification priority. 경기 precedes 광주 so that 경기도 광주시
// stays in 경기도.
var cascade = []Region{
	seoul, busan, gyeonggi, incheon, daejeon, daegu, gwangju, ulsan, sejong, jeju,
	gangwon, chungbuk, chungnam, jeonbuk, jeonnam, gyeongbuk, gyeongnam,
}

// gazetteerEntry maps one district or city name to the region that owns it.
// A name may appear under several parents (중구, 고성군).
type gazetteerEntry struct {
	Name   string
	Parent string
}

var (
	gazetteer  = buildGazetteer(regions)
	provincial = buildProvincial(regions)
	byName     = indexRegions(regions)
)

func buildGazetteer(rs []Region) []gazetteerEntry {
	var out []gazetteerEntry
	for _, r := range rs {
		for _, d := range r.Districts {
			out = append(out, gazetteerEntry{Name: d, Parent: r.Name})
		}
	}
	return out
}

// buildProvincial returns the nationwide city/county list shared by all provinces.
func buildProvincial(rs []Region) []string {
	var out []string
	for _, r := range rs {
		if r.Kind == Province {
			out = append(out, r.Districts...)
		}
	}
	return out
}

func indexRegions(rs []Region) map[string]Region {
	m := make(map[string]Region, len(rs)*4)
	for _, r := range rs {
		m[r.Name] = r
	}
	return m
}
