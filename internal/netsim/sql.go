package netsim

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The NetSim schema names below are an external protocol constant: they
// are the exact table and column names of the ERP version this bridge was
// built against, and changing them breaks wire compatibility.
//
// All builders interpolate their arguments directly into the SQL text,
// matching the legacy client byte for byte. There is no escaping or
// parameter binding; switching to binding would change which rows a
// search containing SQL metacharacters matches, so any such change has to
// happen here, behind this seam, and be called out to callers.

// turkishUpper mirrors the WIN1254 collation the database runs with, so
// that dotted/dotless i search terms match the way the legacy client did.
var turkishUpper = cases.Upper(language.Turkish)

// likeTerm uppercases a search term for a case-insensitive substring match.
func likeTerm(term string) string {
	return turkishUpper.String(strings.TrimSpace(term))
}

const orderColumns = `A.ALISSATIS_NO, A.TAKIP_NO, A.ISLEM_KODU, A.TARIH, A.TESLIM_TARIHI, A.ONAY, A.KAPANDI, A.CARI_NO, C.UNVAN, A.TOPLAM_TUTAR, A.DOVIZ`

func buildOrdersSQL(limit, offset int, onlyOpen bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT FIRST %d SKIP %d %s\n", limit, offset, orderColumns)
	sb.WriteString("FROM ALSAASIL A\nLEFT JOIN CARIKART C ON C.CARI_NO = A.CARI_NO\n")
	sb.WriteString("WHERE A.ISLEM_KODU LIKE 'ALIS%'\n")
	if onlyOpen {
		sb.WriteString("AND A.KAPANDI = 0\n")
	}
	sb.WriteString("ORDER BY A.TARIH DESC")
	return sb.String()
}

func buildSingleOrderSQL(orderNo int64) string {
	return fmt.Sprintf(`SELECT FIRST 1 %s
FROM ALSAASIL A
LEFT JOIN CARIKART C ON C.CARI_NO = A.CARI_NO
WHERE A.ALISSATIS_NO = %d`, orderColumns, orderNo)
}

func buildOrderCountSQL(onlyOpen bool) string {
	sql := "SELECT COUNT(*) AS CNT FROM ALSAASIL A WHERE A.ISLEM_KODU LIKE 'ALIS%'"
	if onlyOpen {
		sql += " AND A.KAPANDI = 0"
	}
	return sql
}

func buildNewOrdersSQL(minutesAgo int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT FIRST %d %s\n", newOrdersCap, orderColumns)
	sb.WriteString("FROM ALSAASIL A\nLEFT JOIN CARIKART C ON C.CARI_NO = A.CARI_NO\n")
	sb.WriteString("WHERE A.ISLEM_KODU LIKE 'ALIS%'\nAND A.KAPANDI = 0\n")
	fmt.Fprintf(&sb, "AND A.TARIH >= DATEADD(-%d MINUTE TO CURRENT_TIMESTAMP)\n", minutesAgo)
	sb.WriteString("ORDER BY A.TARIH DESC")
	return sb.String()
}

func buildOrderDetailsSQL(orderNo int64) string {
	return fmt.Sprintf(`SELECT D.DETAY_NO, D.ALISSATIS_NO, D.SIRA_NO, D.STOK_NO, S1.STOK_KODU, S1.STOK_ADI,
D.URETIM_STOK_NO, S2.STOK_ADI AS URETIM_STOK_ADI,
D.MIKTAR, D.BIRIM, D.BIRIM_FIYAT, D.TUTAR,
D.ACIKLAMA1, D.ACIKLAMA2, D.ACIKLAMA3, D.ACIKLAMA4, D.TESLIM_TARIHI,
R.RECETE_ADI
FROM ALSADETAY D
LEFT JOIN STOKKART S1 ON S1.STOK_NO = D.STOK_NO
LEFT JOIN STOKKART S2 ON S2.STOK_NO = D.URETIM_STOK_NO
LEFT JOIN URETRECE R ON R.STOK_NO = D.URETIM_STOK_NO
WHERE D.ALISSATIS_NO = %d
ORDER BY D.SIRA_NO`, orderNo)
}

func buildCustomerSQL(customerNo int64) string {
	return fmt.Sprintf("SELECT FIRST 1 CARI_NO, CARI_KODU, UNVAN, VERGI_DAIRESI, VERGI_NO FROM CARIKART WHERE CARI_NO = %d", customerNo)
}

func buildProductSQL(stockNo int64) string {
	return fmt.Sprintf("SELECT FIRST 1 STOK_NO, STOK_KODU, STOK_ADI, BIRIM, TIP_ADI FROM STOKKART WHERE STOK_NO = %d", stockNo)
}

func buildRecipesSQL(limit, offset int, search string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT FIRST %d SKIP %d R.RECETE_NO, R.RECETE_KODU, R.RECETE_ADI, R.AKTIF, R.STOK_NO, S.STOK_ADI\n", limit, offset)
	sb.WriteString("FROM URETRECE R\nLEFT JOIN STOKKART S ON S.STOK_NO = R.STOK_NO\n")
	if search != "" {
		term := likeTerm(search)
		fmt.Fprintf(&sb, "WHERE (UPPER(R.RECETE_KODU) LIKE '%%%s%%' OR UPPER(R.RECETE_ADI) LIKE '%%%s%%')\n", term, term)
	}
	sb.WriteString("ORDER BY R.RECETE_KODU")
	return sb.String()
}

func buildRecipeCountSQL() string {
	return "SELECT COUNT(*) AS CNT FROM URETRECE"
}

func buildRevisionsSQL(recipeNo int64) string {
	return fmt.Sprintf(`SELECT REVIZE_NO, RECETE_NO, REVIZE_KODU, AKTIF, VARSAYILAN, KATSAYI, MIKTAR, TARIH
FROM URETREV
WHERE RECETE_NO = %d
ORDER BY VARSAYILAN DESC, REVIZE_KODU`, recipeNo)
}

// buildDefaultRevisionSQL resolves "the" revision of a recipe: default flag
// first, then active flag, first row wins.
func buildDefaultRevisionSQL(recipeNo int64) string {
	return fmt.Sprintf("SELECT FIRST 1 REVIZE_NO FROM URETREV WHERE RECETE_NO = %d ORDER BY VARSAYILAN DESC, AKTIF DESC", recipeNo)
}

func buildRecipeDetailsSQL(revisionNo int64) string {
	return fmt.Sprintf(`SELECT D.DETAY_NO, D.REVIZE_NO, D.OPERASYON_ADI, D.YON, D.SIRA_NO,
D.STOK_NO, S1.STOK_ADI, D.BIRIM, D.BIRIM_CARPAN,
D.URETIM_STOK_NO, S2.STOK_ADI AS URETIM_STOK_ADI,
S1.TIP_ADI, D.ALT_RECETE_NO
FROM URETDET D
LEFT JOIN STOKKART S1 ON S1.STOK_NO = D.STOK_NO
LEFT JOIN STOKKART S2 ON S2.STOK_NO = D.URETIM_STOK_NO
WHERE D.REVIZE_NO = %d
ORDER BY D.SIRA_NO`, revisionNo)
}

func buildSubDetailsSQL(detailNo int64) string {
	return fmt.Sprintf(`SELECT A.ALTDETAY_NO, A.DETAY_NO, A.SIRA_NO, A.DEGISKEN_ADI,
A.STOK_NO, S.STOK_ADI, A.BIRIM, A.MIKTAR
FROM URETDETALT A
LEFT JOIN STOKKART S ON S.STOK_NO = A.STOK_NO
WHERE A.DETAY_NO = %d
ORDER BY A.SIRA_NO`, detailNo)
}

// buildProductRecipeSQL finds the first recipe whose lines reference the
// stock number as either input or output.
func buildProductRecipeSQL(stockNo int64) string {
	return fmt.Sprintf(`SELECT FIRST 1 V.RECETE_NO
FROM URETDET D
JOIN URETREV V ON V.REVIZE_NO = D.REVIZE_NO
WHERE D.STOK_NO = %d OR D.URETIM_STOK_NO = %d
ORDER BY V.RECETE_NO`, stockNo, stockNo)
}

func buildTablesSQL() string {
	return `SELECT TRIM(RDB$RELATION_NAME) AS TABLE_NAME
FROM RDB$RELATIONS
WHERE COALESCE(RDB$SYSTEM_FLAG, 0) = 0 AND RDB$VIEW_BLR IS NULL
ORDER BY RDB$RELATION_NAME`
}

func buildTableColumnsSQL(tableName string) string {
	return fmt.Sprintf(`SELECT TRIM(RF.RDB$FIELD_NAME) AS FIELD_NAME, F.RDB$FIELD_TYPE, F.RDB$FIELD_LENGTH, RF.RDB$NULL_FLAG
FROM RDB$RELATION_FIELDS RF
JOIN RDB$FIELDS F ON F.RDB$FIELD_NAME = RF.RDB$FIELD_SOURCE
WHERE RF.RDB$RELATION_NAME = '%s'
ORDER BY RF.RDB$FIELD_POSITION`, strings.ToUpper(strings.TrimSpace(tableName)))
}
