package service

import "royalcert/internal/models"

type presetCategory struct {
	code  string
	name  string
	items []string
}

var forkliftChecklist = []presetCategory{
	{"A", "Kumanda ve İşaretler", []string{
		"Yönlendirme kumandaları ve işaretleri",
		"Sürme ve frenleme kumandaları ve işaretleri",
		"Kaldırma ve indirme kumandaları ve işaretleri",
		"Yan kayma kumandaları ve işaretleri",
		"Çatal pozisyon kumandaları ve işaretleri",
		"Acil durdurma donanımı",
		"Sesli uyarı cihazları (korna)",
		"Çalışma lambaları ve işaretleri",
	}},
	{"B", "Yürüyüş ve Direksiyon", []string{
		"Hareket, direksiyon ve fren sistemlerinin genel durumu",
		"Tahrik tekerleri",
		"Yük tekerleri",
		"Destek tekerleri",
		"Diferansiyel kilit sistemi",
		"Park freni",
		"Servis freni",
		"Direksiyon sistemi",
	}},
	{"C", "Göstergeler ve Uyarılar", []string{
		"Kombine gösterge paneli",
		"Yakıt göstergesi",
		"Sıcaklık göstergesi",
		"Çalışma saati göstergesi",
		"Batarya şarj göstergesi",
		"Çalışır durumda ikaz lambaları",
		"Geri vites uyarı sistemi",
		"Yük merkezi işaretlemesi",
	}},
	{"D", "Fren Sistemi", []string{
		"Fren balata ve disklerinin durumu",
		"Fren sisteminin genel çalışması",
		"Park freni ayar ve çalışması",
		"Fren hidrolik sisteminin durumu",
		"Fren boruları ve bağlantılarının durumu",
		"Fren pedalının çalışması",
		"Acil fren sistemi",
		"Fren yağı seviyesi",
	}},
	{"E", "Kaldırma Sistemi", []string{
		"Kaldırma zincirlerinin durumu",
		"Zincir gerginliği ve ayarları",
		"Kaldırma silindirlerinin durumu",
		"Hidrolik hortumlar ve bağlantılar",
		"Mast ray ve kayar parçalar",
		"Kaldırma kapasitesi etiketlemesi",
		"Yükseklik sınırlayıcı sistemler",
		"Eğim silindirleri",
	}},
	{"F", "Çatal ve Ataşmanlar", []string{
		"Çatal kollarının genel durumu",
		"Çatal kol uzunluk ve kalınlığı",
		"Çatal ayarlama sistemleri",
		"Ek ataşmanların durumu",
		"Çatal pozisyon kilitleme sistemi",
		"Yan kayma sistemi",
		"Çatal uçlarının durumu",
		"Yük baskı sistemi",
	}},
	{"G", "Güvenlik Donanımları", []string{
		"Genel güvenlik kontrolleri",
		"Operatör kabini durumu",
		"Emniyet kemeri ve sabitleme",
		"Ek koruyucu donanımlar",
		"Çalışma alanı sınırlayıcıları",
	}},
	{"H", "Yük Deneyi ve Belgeler", []string{
		"Statik yük deneyi",
		"Dinamik yük deneyi",
		"Kapasite ve yük diyagramı etiketi",
		"Kullanım kılavuzu ve bakım kayıtları",
	}},
}

var caraskalChecklist = []presetCategory{
	{"A", "Genel Durum", []string{
		"Tanıtım ve kapasite etiketi",
		"Gövde ve muhafazaların durumu",
		"Askı noktası ve bağlantı elemanları",
		"Kullanım kılavuzu ve bakım kayıtları",
	}},
	{"B", "Kaldırma Donanımı", []string{
		"Yük zinciri aşınma ve uzama kontrolü",
		"El zinciri durumu",
		"Zincir dişlisi ve kılavuzları",
		"Kanca, kanca emniyet mandalı ve döner başlık",
		"Kancada açılma ve deformasyon kontrolü",
	}},
	{"C", "Fren ve Emniyet", []string{
		"Yük freni çalışması",
		"Aşırı yük koruma tertibatı",
		"Üst ve alt sınır durdurucuları",
	}},
	{"D", "Yük Deneyi", []string{
		"Statik yük deneyi",
		"Dinamik yük deneyi",
	}},
}

func buildCategories(preset []presetCategory) []models.TemplateCategory {
	cats := make([]models.TemplateCategory, 0, len(preset))
	for _, p := range preset {
		items := make([]models.TemplateItem, 0, len(p.items))
		for _, text := range p.items {
			items = append(items, models.TemplateItem{Text: text, HasComment: true, Required: true})
		}
		cats = append(cats, models.TemplateCategory{Code: p.code, Name: p.name, Items: items})
	}
	return cats
}

// builtinTemplates returns fresh copies of the seeded checklists. Item ids are
// left at 0 so normalization numbers them in order.
func builtinTemplates() []TemplateInput {
	return []TemplateInput{
		{
			Name:          "FORKLIFT MUAYENE FORMU",
			EquipmentType: "FORKLIFT",
			TemplateType:  models.TemplateForm,
			Description:   "Forklift periyodik muayene kontrol listesi",
			Categories:    buildCategories(forkliftChecklist),
		},
		{
			Name:          "CARASKAL MUAYENE FORMU",
			EquipmentType: "CARASKAL",
			TemplateType:  models.TemplateForm,
			Description:   "Caraskal periyodik muayene kontrol listesi",
			Categories:    buildCategories(caraskalChecklist),
		},
	}
}
