// Package chosung extracts Hangul initial consonants (chosung) and filters
// candidate names by either literal text or initial consonants.
//
// A query like "ㄱㅇ" finds "강아지" and "고양이" because their initial
// consonant forms "ㄱㅇㅈ" and "ㄱㅇㅇ" contain it. Callers precompute the
// initial consonant form of every candidate once with Extract and pass both
// slices to Filter on every keystroke.
package chosung
