package sources

// Entry maps a registrable news domain to its display name.
type Entry struct {
	Domain string
	Name   string
}

// Tables holds the three curated lookup tables consulted in fixed
// priority order: Bangladesh first, then India, then International.
// Order within a table matters; the first matching entry wins.
type Tables struct {
	Bangladesh    []Entry
	India         []Entry
	International []Entry
}

// AllDomains returns every table key, Bangladesh first, for use as a
// search-provider allowlist.
func (t Tables) AllDomains() []string {
	out := make([]string, 0, len(t.Bangladesh)+len(t.India)+len(t.International))
	for _, e := range t.Bangladesh {
		out = append(out, e.Domain)
	}
	for _, e := range t.India {
		out = append(out, e.Domain)
	}
	for _, e := range t.International {
		out = append(out, e.Domain)
	}
	return out
}

// DefaultTables returns the built-in curated media lists. Config may
// append extra entries but never mutates these at runtime.
func DefaultTables() Tables {
	return Tables{
		Bangladesh: []Entry{
			{"thedailystar.net", "The Daily Star"},
			{"bdnews24.com", "Bangladesh News 24 Hours Ltd"},
			{"prothomalo.com", "Prothom Alo"},
			{"dailynayadiganta.com", "Daily Naya Diganta"},
			{"jugantor.com", "Daily Jugantor"},
			{"mzamin.com", "Dainik Manab Zamin"},
			{"thefinancialexpress.com.bd", "The Financial Express"},
			{"financialexpress.com.bd", "The Financial Express"},
			{"dailyjanakantha.com", "Janakantha"},
			{"samakal.com", "The Daily Samakal"},
			{"dhakatribune.com", "Dhaka Tribune"},
			{"banglatribune.com", "Bangla Tribune"},
			{"banglanews24.com", "Banglanews24.com"},
			{"dhakapost.com", "Dhaka Post"},
			{"dhakamail.com", "Dhaka Mail"},
			{"jagonews24.com", "Jagonews24.com"},
			{"priyo.com", "Priyo.com"},
			{"ittefaq.com", "The Daily Ittefaq"},
			{"bangladeshpratidin.com", "Bangladesh Pratidin"},
			{"kalerkantho.com", "Daily Kalerkantho"},
			{"amadershomoy.com", "Amader Shomoy"},
			{"dailyinqilab.com", "Daily Inqilab"},
			{"jaijaidin.com", "Jaijaidin"},
			{"ajkerpatrika.com", "Ajker Patrika"},
			{"thesangbad.com", "The Sangbad"},
			{"bangladesherkhabor.com", "Bangladesher Khabor"},
			{"bd24live.com", "BD24Live Media"},
			{"somoynews.tv", "Somoy News"},
			{"dailysun.com", "Daily Sun"},
			{"newagebd.net", "New Age"},
			{"thebusinessstandard.net", "The Business Standard"},
			{"risingbd.com", "Risingbd"},
			{"rtnn.net", "RTNN"},
			{"sarabangla.net", "Sara Bangla"},
			{"sheershanews.com", "Sheersha News"},
			{"bssnews.net", "BSS - Bangladesh Sangbad Sangstha"},
			{"atnnews.tv", "ATN News"},
			{"channel24bd.tv", "Channel 24"},
			{"channelionline.com", "Channel I"},
			{"dbcinews.tv", "DBC News"},
			{"ekusheytv.com", "Ekushey TV"},
			{"independent24.com", "Independent TV"},
			{"jamuna.tv", "Jamuna Television"},
			{"odhikar.news", "Odhikar"},
			{"poriborton.news", "Poriborton"},
			{"bartafx.com", "barta24"},
			{"dailybangladesh.com", "Daily Bangladesh"},
			{"deshrupantor.com", "Desh Rupantor"},
			{"amarnoakhali.com", "Amar Noakhali"},
			{"anandadhara.com", "Anandadhara"},
			{"ukhiyanews.com", "UkhiyaNews.Com"},
			{"tbsnews.net", "The Business Standard"},
			{"channeli.tv", "Channel i"},
			{"atnbangla.tv", "ATN Bangla"},
			{"ntvbd.com", "NTV Bangladesh"},
			{"itvbd.com", "Independent Television"},
			{"gtv.com.bd", "Gazi Television"},
			{"ekushey-tv.com", "Ekushey TV"},
			{"rtvonline.com", "RTV"},
			{"banglavision.tv", "Banglavision"},
			{"massranga.tv", "Maasranga TV"},
			{"ekattor.tv", "Ekattor TV"},
			{"news24bd.tv", "News24"},
			{"atnnewstv.com", "ATN News"},
			{"btv.gov.bd", "Bangladesh Television"},
			{"deshtvbd.com", "Desh TV"},
			{"bijoytv.com", "Bijoy TV"},
			{"boishakhitv.com", "Boishakhi TV"},
		},
		India: []Entry{
			{"timesofindia.indiatimes.com", "Times of India"},
			{"thehindu.com", "The Hindu"},
			{"indianexpress.com", "Indian Express"},
			{"hindustantimes.com", "Hindustan Times"},
			{"economictimes.indiatimes.com", "The Economic Times"},
			{"business-standard.com", "Business Standard"},
			{"ndtv.com", "NDTV"},
			{"news18.com", "News18"},
			{"indiatoday.in", "India Today"},
			{"zeenews.india.com", "Zee News"},
			{"aajtak.in", "Aaj Tak"},
			{"abplive.com", "ABP Live"},
			{"jagran.com", "Dainik Jagran"},
			{"bhaskar.com", "Dainik Bhaskar"},
			{"livehindustan.com", "Live Hindustan"},
			{"livemint.com", "Mint"},
			{"scroll.in", "Scroll.in"},
			{"thewire.in", "The Wire"},
			{"wionews.com", "WION"},
			{"indiatvnews.com", "India TV"},
			{"newsnationtv.com", "News Nation"},
			{"jansatta.com", "Jansatta"},
			{"india.com", "India.com"},
			{"outlookindia.com", "Outlook India"},
			{"thequint.com", "The Quint"},
			{"dnaindia.com", "DNA"},
			{"navbharattimes.indiatimes.com", "Navbharat Times"},
			{"firstpost.com", "First Post"},
			{"timesnownews.com", "Times Now"},
			{"thestatesman.com", "The Statesman"},
			{"telegraphindia.com", "The Telegraph"},
			{"deccanherald.com", "Deccan Herald"},
			{"newindianexpress.com", "The New Indian Express"},
			{"manoramaonline.com", "Manorama Online"},
			{"dainikjagran.com", "Dainik Jagran"},
			{"amarujala.com", "Amar Ujala"},
			{"divyabhaskar.co.in", "Divya Bhaskar"},
			{"dainikbhaskar.com", "Dainik Bhaskar"},
			{"zeenews.com", "Zee News"},
			{"oneindia.com", "Oneindia"},
		},
		International: []Entry{
			{"nytimes.com", "The New York Times"},
			{"bbc.co.uk", "BBC News"},
			{"bbc.com", "BBC News"},
			{"cnn.com", "CNN"},
			{"edition.cnn.com", "CNN International"},
			{"theguardian.com", "The Guardian"},
			{"dailymail.co.uk", "Daily Mail"},
			{"reuters.com", "Reuters"},
			{"apnews.com", "Associated Press"},
			{"aljazeera.com", "Al Jazeera"},
			{"euronews.com", "Euronews"},
			{"dw.com", "Deutsche Welle"},
			{"france24.com", "France 24"},
			{"rt.com", "RT"},
			{"skynews.com", "Sky News"},
			{"al-arabiya.net", "Al Arabiya"},
			{"nhk.or.jp", "NHK World-Japan"},
			{"cgtn.com", "CGTN"},
			{"i24news.tv", "i24NEWS"},
			{"trt.net.tr", "TRT Haber/Global"},
			{"bloomberg.com", "Bloomberg Business"},
			{"forbes.com", "Forbes"},
			{"cnbc.com", "CNBC"},
			{"chinadaily.com.cn", "China Daily"},
			{"news.com.au", "news.com.au"},
			{"nzherald.co.nz", "New Zealand Herald"},
			{"dawn.com", "Dawn"},
			{"jakartapost.com", "Jakarta Post"},
			{"thestar.com.my", "Star"},
			{"straitstimes.com", "Straits Times"},
			{"bangkokpost.com", "Bangkok Post"},
			{"japantimes.co.jp", "Japan Times"},
			{"scmp.com", "South China Morning Post"},
			{"voanews.com", "Voice of America"},
			{"yahoo.com", "Yahoo! News"},
			{"news.google.com", "Google News"},
			{"msn.com", "MSN News"},
			{"globo.com", "Globo"},
			{"naver.com", "Naver"},
			{"detik.com", "Detik"},
			{"uol.com.br", "UOL"},
			{"infobae.com", "Infobae"},
			{"onet.pl", "Onet"},
			{"wp.pl", "Wirtualna Polska"},
			{"bild.de", "Bild"},
			{"livedoor.jp", "Livedoor"},
			{"auone.jp", "Auone"},
			{"t-online.de", "T-Online"},
			{"vnexpress.net", "VnExpress"},
			{"n-tv.de", "n-tv"},
			{"163.com", "NetEase"},
			{"nypost.com", "New York Post"},
			{"usatoday.com", "USA Today"},
			{"rbc.ru", "RBC"},
			{"elpais.com", "El País"},
			{"elmundo.es", "El Mundo"},
			{"corriere.it", "Corriere della Sera"},
			{"repubblica.it", "La Repubblica"},
			{"sky.com", "Sky News"},
			{"news.sky.com", "Sky News"},
			{"foxnews.com", "Fox News"},
			{"abcnews.go.com", "ABC News"},
			{"msnbc.com", "MSNBC"},
			{"www3.nhk.or.jp", "NHK World"},
			{"cbc.ca", "CBC News"},
			{"alarabiya.net", "Al Arabiya"},
			{"abc.net.au", "ABC Australia"},
			{"channelnewsasia.com", "Channel NewsAsia"},
			{"washingtonpost.com", "The Washington Post"},
			{"wsj.com", "The Wall Street Journal"},
			{"ft.com", "Financial Times"},
			{"independent.co.uk", "The Independent"},
			{"lefigaro.fr", "Le Figaro"},
			{"faz.net", "Frankfurter Allgemeine"},
			{"theglobeandmail.com", "The Globe and Mail"},
			{"asahi.com", "The Asahi Shimbun"},
			{"yomiuri.co.jp", "The Yomiuri Shimbun"},
			{"mainichi.jp", "The Mainichi"},
			{"koreatimes.co.kr", "The Korea Times"},
			{"joongang.co.kr", "JoongAng Daily"},
			{"hankyoreh.com", "The Hankyoreh"},
			{"kompas.com", "Kompas"},
			{"gulfnews.com", "Gulf News"},
			{"arabnews.com", "Arab News"},
			{"lemonde.fr", "Le Monde"},
			{"spiegel.de", "Der Spiegel"},
			{"thetimes.co.uk", "The Times"},
			{"telegraph.co.uk", "The Telegraph"},
			{"mirror.co.uk", "The Mirror"},
			{"express.co.uk", "Daily Express"},
			{"thesun.co.uk", "The Sun"},
			{"metro.co.uk", "Metro"},
			{"eveningstandard.co.uk", "Evening Standard"},
			{"irishtimes.com", "The Irish Times"},
			{"rte.ie", "RTÉ"},
			{"heraldscotland.com", "The Herald"},
			{"scotsman.com", "The Scotsman"},
			{"thejournal.ie", "TheJournal.ie"},
			{"breakingnews.ie", "Breaking News"},
			{"irishmirror.ie", "Irish Mirror"},
			{"irishnews.com", "Irish News"},
			{"belfasttelegraph.co.uk", "Belfast Telegraph"},
			{"cbsnews.com", "CBS News"},
			{"nbcnews.com", "NBC News"},
			{"latimes.com", "Los Angeles Times"},
			{"economist.com", "The Economist"},
			{"npr.org", "NPR"},
			{"rferl.org", "Radio Free Europe"},
			{"smh.com.au", "Sydney Morning Herald"},
			{"theage.com.au", "The Age"},
			{"theaustralian.com.au", "The Australian"},
			{"tass.com", "TASS"},
			{"sputniknews.com", "Sputnik News"},
			{"globaltimes.cn", "Global Times"},
		},
	}
}
