package service

import "sort"

// ScoringEvent 计分事件目录条目
type ScoringEvent struct {
	Code   string
	Name   string
	Points int
	Emoji  string
}

// scoringEvents 计分事件目录。仅管理员可触发，代码内固化，不落库。
var scoringEvents = map[string]ScoringEvent{
	// 加分事件
	"assenza":              {Name: "Assenza", Points: 20, Emoji: "🏖️"},
	"area_relax":           {Name: "Area Relax", Points: 30, Emoji: "😴"},
	"parolaccia":           {Name: "Parolaccia", Points: 30, Emoji: "🤬"},
	"gergo_giovanile":      {Name: "Gergo Giovanile", Points: 15, Emoji: "🗣️"},
	"lavagna":              {Name: "Scrive alla Lavagna", Points: 5, Emoji: "📝"},
	"correzione_immediata": {Name: "Correzione Immediata", Points: 5, Emoji: "✅"},
	"malore":               {Name: "Malore in Classe", Points: 200, Emoji: "🏥"},
	"complimento":          {Name: "Complimento", Points: 10, Emoji: "💕"},
	"pc_sabotato":          {Name: "PC Sabotato", Points: 5, Emoji: "💻"},
	"inciampa":             {Name: "Inciampa o Cade", Points: 20, Emoji: "🤸"},
	"video":                {Name: "Fa Vedere un Video", Points: 15, Emoji: "🎬"},
	"risata":               {Name: "Risata", Points: 10, Emoji: "😂"},
	"esercitazione":        {Name: "Esercitazione", Points: 20, Emoji: "📚"},
	"monocromo":            {Name: "Veste Monocromo", Points: 10, Emoji: "👔"},
	"litiga_prof":          {Name: "Litiga con un Prof", Points: 100, Emoji: "🥊"},
	"litiga_alunno":        {Name: "Litiga con un Alunno", Points: 50, Emoji: "😤"},
	"meme":                 {Name: "Meme", Points: 10, Emoji: "🐸"},
	"divulgatore":          {Name: "Divulgatore d'Oro", Points: 20, Emoji: "🎓"},
	"influencer":           {Name: "Prof Influencer", Points: 5, Emoji: "📱"},
	"empatia":              {Name: "Empatia", Points: 20, Emoji: "🤗"},
	"esce_verifica":        {Name: "Esce Durante Verifica", Points: 15, Emoji: "🚪"},
	"nota_merito":          {Name: "Nota di Merito", Points: 35, Emoji: "🌟"},
	"capriola":             {Name: "Capriola", Points: 150, Emoji: "🤸‍♂️"},
	"dimentica_verifiche":  {Name: "Dimentica Verifiche", Points: 30, Emoji: "🤷"},
	"caccia_nota":          {Name: "Caccia Nota", Points: 25, Emoji: "📜"},
	"mette_10":             {Name: "Mette 10", Points: 50, Emoji: "💯"},

	// 扣分事件
	"sbaglia":                   {Name: "Sbaglia", Points: -10, Emoji: "❌"},
	"arriva_tardi":              {Name: "Arriva Tardi", Points: -10, Emoji: "⏰"},
	"verifica_giorno_dopo":      {Name: "Verifica Giorno Dopo", Points: -15, Emoji: "😱"},
	"battuta_boomer":            {Name: "Battuta Boomer", Points: -15, Emoji: "🧓"},
	"mette_nota":                {Name: "Mette Nota", Points: -30, Emoji: "📋"},
	"dimentica_verifiche_malus": {Name: "Dimentica Verifiche (con panico)", Points: -20, Emoji: "😰"},
	"pois":                      {Name: "Vestiti a Pois", Points: -5, Emoji: "🔴"},
	"assenza_supplente":         {Name: "Assenza con Supplente", Points: -10, Emoji: "👤"},
	"insulta":                   {Name: "Insulta", Points: -10, Emoji: "😠"},
	"mette_ritardo":             {Name: "Mette Ritardo", Points: -5, Emoji: "⌛"},
	"ritardo_pochi_min":         {Name: "Ritardo di Pochi Minuti", Points: -20, Emoji: "⏱️"},
	"fuoriclasse":               {Name: "Fuoriclasse", Points: -5, Emoji: "🚶"},
	"bagno_abolito":             {Name: "Bagno Abolito", Points: -15, Emoji: "🚽"},
	"nota_ingiusta":             {Name: "Nota Ingiusta", Points: -30, Emoji: "😡"},
	"memoria":                   {Name: "Se la Memoria non mi Inganna", Points: -5, Emoji: "🧠"},
	"total_black":               {Name: "Total Black", Points: -10, Emoji: "🖤"},
	"ritira_tel":                {Name: "Ritira Telefono", Points: -15, Emoji: "📵"},
	"rompe":                     {Name: "Rompe Qualcosa", Points: -20, Emoji: "💥"},
	"non_mette_nota":            {Name: "Non Mette Nota a ZIC", Points: -100, Emoji: "🤐"},
}

// LookupScoringEvent 按代码查事件，未知代码 ok=false
func LookupScoringEvent(code string) (ScoringEvent, bool) {
	ev, ok := scoringEvents[code]
	if ok {
		ev.Code = code
	}
	return ev, ok
}

// BonusEvents 加分事件列表，按分值降序
func BonusEvents() []ScoringEvent {
	var result []ScoringEvent
	for code, ev := range scoringEvents {
		if ev.Points > 0 {
			ev.Code = code
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		return result[i].Code < result[j].Code
	})
	return result
}

// MalusEvents 扣分事件列表，按分值升序
func MalusEvents() []ScoringEvent {
	var result []ScoringEvent
	for code, ev := range scoringEvents {
		if ev.Points < 0 {
			ev.Code = code
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points < result[j].Points
		}
		return result[i].Code < result[j].Code
	})
	return result
}
