package wilayah

// bandung holds the kecamatan of Kabupaten Bandung (BPS) with the DPRD Jabar 2
// dapil mapping and an approximate centroid per kecamatan.
var bandung = []District{
	{
		Name: "ARJASARI", Dapil: "JABAR 2-1", Lat: -7.0519, Lng: 107.6184,
		Villages: []Village{
			{"Arjasari", Desa},
			{"Baros", Desa},
			{"Lebakwangi", Desa},
			{"Mekarjaya", Desa},
			{"Pinggirsari", Desa},
			{"Rancakole", Desa},
		},
	},
	{
		Name: "BALEENDAH", Dapil: "JABAR 2-2", Lat: -7.0069, Lng: 107.6105,
		Villages: []Village{
			{"Andir", Desa},
			{"Baleendah", Desa},
			{"Jelekong", Desa},
			{"Manggahang", Desa},
			{"Malakasari", Desa},
			{"Rancamanyar", Desa},
			{"Wargamekar", Desa},
		},
	},
	{
		Name: "BANJARAN", Dapil: "JABAR 2-1", Lat: -7.0427, Lng: 107.5927,
		Villages: []Village{
			{"Banjaran", Kelurahan},
			{"Banjaran Wetan", Desa},
			{"Ciapus", Desa},
			{"Ciherang", Desa},
			{"Kamasan", Desa},
			{"Mekarjaya", Desa},
			{"Neglasari", Desa},
			{"Pasirmulya", Desa},
			{"Sindangpanon", Desa},
			{"Tarajusari", Desa},
		},
	},
	{
		Name: "BOJONGSOANG", Dapil: "JABAR 2-2", Lat: -6.9748, Lng: 107.6363,
		Villages: []Village{
			{"Bojongsoang", Desa},
			{"Buahbatu", Desa},
			{"Cipagalo", Desa},
			{"Lengkong", Desa},
			{"Tegalluar", Desa},
		},
	},
	{
		Name: "CANGKUANG", Dapil: "JABAR 2-1", Lat: -7.0508, Lng: 107.5501,
		Villages: []Village{
			{"Bandasari", Desa},
			{"Ciluncat", Desa},
			{"Cingcin", Desa},
			{"Jatisari", Desa},
			{"Nagrak", Desa},
			{"Panundaan", Desa},
			{"Tanjungsari", Desa},
		},
	},
	{
		Name: "CICALENGKA", Dapil: "JABAR 2-5", Lat: -6.9839, Lng: 107.8299,
		Villages: []Village{
			{"Babakan Peuteuy", Desa},
			{"Cicalengka Kulon", Desa},
			{"Cicalengka Wetan", Desa},
			{"Cikuya", Desa},
			{"Dampit", Desa},
			{"Margaasih", Desa},
			{"Narawita", Desa},
			{"Panenjoan", Desa},
			{"Tanjungwangi", Desa},
			{"Waluya", Desa},
		},
	},
	{
		Name: "CIKANCUNG", Dapil: "JABAR 2-5", Lat: -7.0099, Lng: 107.8181,
		Villages: []Village{
			{"Cihanyir", Desa},
			{"Cikancung", Desa},
			{"Cikasungka", Desa},
			{"Ciluluk", Desa},
			{"Hegarmanah", Desa},
			{"Mandalasari", Desa},
			{"Mekarlaksana", Desa},
			{"Srirahayu", Desa},
			{"Tanjungmekar", Desa},
		},
	},
	{
		Name: "CILENGKRANG", Dapil: "JABAR 2-4", Lat: -6.8929, Lng: 107.7088,
		Villages: []Village{
			{"Cilengkrang", Desa},
			{"Cipanjalu", Desa},
			{"Girimekar", Desa},
			{"Jatiendah", Desa},
			{"Melatiwangi", Desa},
		},
	},
	{
		Name: "CILEUNYI", Dapil: "JABAR 2-4", Lat: -6.9366, Lng: 107.7381,
		Villages: []Village{
			{"Cibiru Hilir", Desa},
			{"Cibiru Wetan", Desa},
			{"Cileunyi Kulon", Desa},
			{"Cileunyi Wetan", Desa},
			{"Cimekar", Desa},
			{"Cinunuk", Kelurahan},
		},
	},
	{
		Name: "CIMAUNG", Dapil: "JABAR 2-1", Lat: -7.0882, Lng: 107.5670,
		Villages: []Village{
			{"Cikalong", Desa},
			{"Cimaung", Desa},
			{"Cipinang", Desa},
			{"Jagabaya", Desa},
			{"Mekarsari", Desa},
			{"Pasirhuni", Desa},
			{"Sukamaju", Desa},
		},
	},
	{
		Name: "CIMENYAN", Dapil: "JABAR 2-4", Lat: -6.8648, Lng: 107.6587,
		Villages: []Village{
			{"Cibeunying", Desa},
			{"Ciburial", Desa},
			{"Cimenyan", Desa},
			{"Mandalamekar", Desa},
			{"Mekarmanik", Desa},
			{"Mekarsaluyu", Desa},
			{"Padasuka", Desa},
			{"Sindangmanik", Desa},
		},
	},
	{
		Name: "CIPARAY", Dapil: "JABAR 2-3", Lat: -7.0345, Lng: 107.7169,
		Villages: []Village{
			{"Bumiwangi", Desa},
			{"Ciherang", Desa},
			{"Cikoneng", Desa},
			{"Ciparay", Kelurahan},
			{"Gunungleutik", Desa},
			{"Mekarlaksana", Desa},
			{"Mekarsari", Desa},
			{"Pakutandang", Desa},
			{"Sarimahi", Desa},
			{"Serangmekar", Desa},
			{"Sumbersari", Desa},
			{"Tegalwaru", Desa},
		},
	},
	{
		Name: "CIWIDEY", Dapil: "JABAR 2-6", Lat: -7.0933, Lng: 107.4475,
		Villages: []Village{
			{"Ciwidey", Kelurahan},
			{"Lebakmuncang", Desa},
			{"Nengkelan", Desa},
			{"Panundaan", Desa},
			{"Panyocokan", Desa},
			{"Rawabogo", Desa},
			{"Sukawening", Desa},
		},
	},
	{
		Name: "DAYEUHKOLOT", Dapil: "JABAR 2-2", Lat: -6.9859, Lng: 107.6214,
		Villages: []Village{
			{"Bojongemas", Kelurahan},
			{"Cangkuang Kulon", Desa},
			{"Cangkuang Wetan", Desa},
			{"Citeureup", Desa},
			{"Dayeuhkolot", Kelurahan},
			{"Sukaasih", Desa},
		},
	},
	{
		Name: "IBUN", Dapil: "JABAR 2-3", Lat: -7.1352, Lng: 107.7770,
		Villages: []Village{
			{"Dukuh", Desa},
			{"Ibun", Desa},
			{"Karyalaksana", Desa},
			{"Lampegan", Desa},
			{"Laksana", Desa},
			{"Mekarwangi", Desa},
			{"Neglasari", Desa},
			{"Pangguh", Desa},
			{"Sudi", Desa},
			{"Talun", Desa},
			{"Tangsimekar", Desa},
		},
	},
	{
		Name: "KATAPANG", Dapil: "JABAR 2-2", Lat: -6.9961, Lng: 107.5644,
		Villages: []Village{
			{"Cilampeni", Desa},
			{"Gandasari", Desa},
			{"Katapang", Desa},
			{"Pangauban", Desa},
			{"Parungserab", Desa},
			{"Sangkanhurip", Desa},
			{"Sukamukti", Desa},
		},
	},
	{
		Name: "KERTASARI", Dapil: "JABAR 2-3", Lat: -7.1895, Lng: 107.7126,
		Villages: []Village{
			{"Ciberem", Desa},
			{"Cihawuk", Desa},
			{"Neglawangi", Desa},
			{"Santosa", Desa},
			{"Sukapura", Desa},
			{"Tarumajaya", Desa},
		},
	},
	{
		Name: "KUTAWARINGIN", Dapil: "JABAR 2-2", Lat: -6.9830, Lng: 107.5255,
		Villages: []Village{
			{"Buninagara", Desa},
			{"Cilame", Desa},
			{"Gajahmekar", Desa},
			{"Jatisari", Desa},
			{"Kopo", Desa},
			{"Kutawaringin", Desa},
			{"Padasuka", Desa},
			{"Pameuntingan", Desa},
			{"Patrapan", Desa},
		},
	},
	{
		Name: "MAJALAYA", Dapil: "JABAR 2-3", Lat: -7.0505, Lng: 107.7538,
		Villages: []Village{
			{"Bojong", Desa},
			{"Biru", Desa},
			{"Majakerta", Desa},
			{"Majalaya", Kelurahan},
			{"Majasetra", Desa},
			{"Neglasari", Desa},
			{"Padaulun", Desa},
			{"Padamulya", Desa},
			{"Sukamaju", Desa},
			{"Sukamukti", Desa},
			{"Wangisagara", Desa},
		},
	},
	{
		Name: "MARGAASIH", Dapil: "JABAR 2-2", Lat: -6.9472, Lng: 107.5451,
		Villages: []Village{
			{"Lagadar", Desa},
			{"Margaasih", Desa},
			{"Mekarrahayu", Desa},
			{"Nanjung", Desa},
			{"Rahayu", Desa},
			{"Sayati", Desa},
		},
	},
	{
		Name: "MARGAHAYU", Dapil: "JABAR 2-2", Lat: -6.9631, Lng: 107.5796,
		Villages: []Village{
			{"Margahayu Selatan", Kelurahan},
			{"Margahayu Tengah", Desa},
			{"Sayati", Desa},
			{"Sukamenak", Desa},
			{"Sulaeman", Desa},
		},
	},
	{
		Name: "NAGREG", Dapil: "JABAR 2-5", Lat: -7.0195, Lng: 107.8931,
		Villages: []Village{
			{"Bojong", Desa},
			{"Ciaro", Desa},
			{"Ciherang", Desa},
			{"Mandalawangi", Desa},
			{"Nagrek", Desa},
			{"Nagreg Kendan", Desa},
		},
	},
	{
		Name: "PACET", Dapil: "JABAR 2-3", Lat: -7.1130, Lng: 107.7299,
		Villages: []Village{
			{"Cinanggela", Desa},
			{"Cirapuan", Desa},
			{"Mangunharja", Desa},
			{"Maruyung", Desa},
			{"Mekar", Desa},
			{"Mekarsari", Desa},
			{"Nagrak", Desa},
			{"Pangauban", Desa},
			{"Sukarame", Desa},
			{"Tanjungwangi", Desa},
		},
	},
	{
		Name: "PAMEUNGPEUK", Dapil: "JABAR 2-2", Lat: -7.0178, Lng: 107.6046,
		Villages: []Village{
			{"Bojongkunci", Desa},
			{"Langonsari", Desa},
			{"Pameungpeuk", Desa},
			{"Rancatungku", Desa},
		},
	},
	{
		Name: "PANGALENGAN", Dapil: "JABAR 2-6", Lat: -7.1789, Lng: 107.5623,
		Villages: []Village{
			{"Lamajang", Desa},
			{"Margamukti", Desa},
			{"Margamekar", Desa},
			{"Margamulya", Desa},
			{"Pangalengan", Kelurahan},
			{"Pulosari", Desa},
			{"Sukaluyu", Desa},
			{"Sukamanah", Desa},
			{"Tribaktimulya", Desa},
			{"Wanasuka", Desa},
			{"Warnasari", Desa},
		},
	},
	{
		Name: "PASEH", Dapil: "JABAR 2-3", Lat: -7.0877, Lng: 107.7818,
		Villages: []Village{
			{"Cipaku", Desa},
			{"Ciramea", Desa},
			{"Karangtunggal", Desa},
			{"Mekarsari", Desa},
			{"Paseh", Desa},
			{"Sindangsari Al Hidayah", Desa},
			{"Sukamanah", Desa},
			{"Tangsungsari", Desa},
		},
	},
	{
		Name: "PASIRJAMBU", Dapil: "JABAR 2-6", Lat: -7.0863, Lng: 107.4919,
		Villages: []Village{
			{"Cibodas", Desa},
			{"Cukanggenteng", Desa},
			{"Mekarmaju", Desa},
			{"Mekarsari", Desa},
			{"Pasirjambu", Desa},
			{"Sugihmukti", Desa},
			{"Tenjolaya", Desa},
		},
	},
	{
		Name: "RANCABALI", Dapil: "JABAR 2-6", Lat: -7.1517, Lng: 107.3996,
		Villages: []Village{
			{"Alamendah", Desa},
			{"Cipelah", Desa},
			{"Indragiri", Desa},
			{"Patengan", Desa},
			{"Sukaresmi", Desa},
		},
	},
	{
		Name: "RANCAEKEK", Dapil: "JABAR 2-4", Lat: -6.9634, Lng: 107.7592,
		Villages: []Village{
			{"Bojongloa", Desa},
			{"Bojongsalam", Desa},
			{"Jelegong", Desa},
			{"Linggar", Desa},
			{"Nanjungmekar", Desa},
			{"Rancaekek Kencana", Desa},
			{"Rancaekek Kulon", Desa},
			{"Rancaekek Wetan", Desa},
			{"Sangiang", Desa},
			{"Sukadana", Desa},
			{"Sukamanah", Desa},
			{"Tegalsumedang", Desa},
		},
	},
	{
		Name: "SOLOKANJERUK", Dapil: "JABAR 2-3", Lat: -7.0076, Lng: 107.7471,
		Villages: []Village{
			{"Bojongemas", Desa},
			{"Cibodas", Desa},
			{"Langensari", Desa},
			{"Padamulya", Desa},
			{"Panyadap", Desa},
			{"Rancakasumba", Desa},
			{"Solokanjeruk", Desa},
			{"Sukamulya", Desa},
		},
	},
	{
		Name: "SOREANG", Dapil: "JABAR 2-1", Lat: -7.0260, Lng: 107.5186,
		Villages: []Village{
			{"Cingcin", Desa},
			{"Karamatmulya", Desa},
			{"Parungserab", Desa},
			{"Panyirapan", Desa},
			{"Pamekaran", Desa},
			{"Soreang", Kelurahan},
			{"Sukajadi", Desa},
			{"Sukasari", Desa},
			{"Sukanagara", Desa},
		},
	},
}
